package version

import (
	"runtime/debug"
	"sync"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/kbukum/redisext/version.Version=v1.2.0"
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty,omitempty"`
}

var (
	once sync.Once
	info Info
)

// Get returns build information. Values missing from ldflags are filled
// from the VCS stamp the toolchain embeds.
func Get() Info {
	once.Do(func() {
		info = Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
		if len(info.GitCommit) > 7 {
			info.GitCommit = info.GitCommit[:7]
		}
	})
	return info
}

// Short returns "version-commit[-dirty]", or just the version without a
// commit.
func Short() string {
	i := Get()
	if i.GitCommit == "" {
		return i.Version
	}
	s := i.Version + "-" + i.GitCommit
	if i.Dirty {
		s += "-dirty"
	}
	return s
}
