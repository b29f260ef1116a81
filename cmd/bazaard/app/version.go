package bazaard

// Version should be set by the release build, for example with
// -ldflags "-X github.com/iov-one/bazaar/cmd/bazaard/app.Version=v0.1.0"
var Version = "dev"
