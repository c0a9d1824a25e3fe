package constants

import "os"

// Права доступа для каталогов и файлов, создаваемых приложением.
const (
	// DirPermStandard — каталог логов (владелец rwx, группа r-x).
	DirPermStandard os.FileMode = 0750

	// FilePermPrivate — файлы с учётными данными (только владелец rw).
	FilePermPrivate os.FileMode = 0600
)
