package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const (
	MimeImage = "image/"
	MimeText  = "text/plain"
	MimePDF   = "application/pdf"
)

// PassingPercentage is the minimum percentage counted as a pass in quiz statistics.
const PassingPercentage = 60

// MaxAttachmentSize bounds announcement attachments (10 MiB).
const MaxAttachmentSize = 10 << 20

var (
	AllowedAttachmentExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".gif", ".txt"}
	AllowedAttachmentMimeTypes  = []string{MimeImage, MimePDF, MimeText}
)
