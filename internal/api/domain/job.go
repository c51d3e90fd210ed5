package domain

// ThumbnailJob is the payload handed to the background queue after a
// byte-bearing upload. Derived renditions are produced out of process;
// the API's obligation ends at enqueue.
type ThumbnailJob struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}
