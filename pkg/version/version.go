package version

// Current is the release version, set at build time with
// -ldflags "-X github.com/DrSkyle/linkpath/pkg/version.Current=v1.0.0".
var Current = "dev"

// AppName names the binary and the telemetry service.
const AppName = "linkpath"
