package mongodb

import (
	"context"

	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Health implements port.Pinger against the mongo deployment.
type Health struct {
	client *mongo.Client
}

var _ port.Pinger = (*Health)(nil)

func NewHealth(client *mongo.Client) *Health {
	return &Health{client: client}
}

func (h *Health) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}
