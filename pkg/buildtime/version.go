package buildtime

// set by the linker:
//
//	go build -ldflags "-X github.com/stellarburgers/burger/pkg/buildtime.version=v1.2.3 -X github.com/stellarburgers/burger/pkg/buildtime.revision=$(git rev-parse HEAD)"
var (
	version  = "dev"
	revision = "unknown"
)

// version string when this burger has been built.
func VERSION() string {
	return version
}

func GIT_REVISION() string {
	return revision
}

func VersionString() string {
	return version + " (commit: " + revision + ")"
}
