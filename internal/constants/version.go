package constants

// Значения подставляются при сборке:
//
//	go build -ldflags "-X github.com/Kargones/loupe-ci/internal/constants.Version=1.4.0 \
//	  -X github.com/Kargones/loupe-ci/internal/constants.PreCommitHash=$(git rev-parse --short HEAD)"
var (
	// Version — версия приложения.
	Version = "dev"
	// PreCommitHash — хеш коммита сборки.
	PreCommitHash = ""
)
