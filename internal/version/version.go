package version

// AppVersion is the harness version reported by the version command.
const AppVersion = "0.1.0"
