package worker

// Task represents one file upload. Created by the scheduler while walking
// the source, consumed exactly once by a worker.
type Task struct {
	LocalPath string
	RemoteKey string
	Size      int64
}

// Config contains worker configuration.
type Config struct {
	Bucket       string
	SkipExisting bool
}
