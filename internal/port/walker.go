package port

// FileWalker lists the source documents under a directory.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path string
	Size int64
}
