package catalog

// Version is a known catalog generation.
type Version int

const (
	VersionUnknown Version = iota
	VersionCo11
	VersionCo12
)

// Raw version numbers as stored in ZVERSIONINFO.ZVERSION.
const (
	rawVersionCo11 int64 = 1100
	rawVersionCo12 int64 = 1200
)

// ClassifyVersion maps a raw version number to a generation.
func ClassifyVersion(raw int64) Version {
	switch raw {
	case rawVersionCo11:
		return VersionCo11
	case rawVersionCo12:
		return VersionCo12
	default:
		return VersionUnknown
	}
}

// Supported reports whether typed loading may run against this generation.
func (v Version) Supported() bool {
	switch v {
	case VersionCo11, VersionCo12:
		return true
	default:
		return false
	}
}

func (v Version) String() string {
	switch v {
	case VersionCo11:
		return "Co11"
	case VersionCo12:
		return "Co12"
	default:
		return "Unknown"
	}
}
