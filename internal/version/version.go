package version

// Build metadata, overridden at build time with
// -ldflags "-X github.com/0shq/ddc/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Info is the JSON shape served by the version endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true"}
}

// String renders the metadata for log lines, e.g. "dev (none)".
func (i Info) String() string {
	s := i.Version + " (" + i.Commit
	if i.Dirty {
		s += ", dirty"
	}
	return s + ")"
}
