package consts

const (
	Name    = "vcbridge"
	Version = "v0.1.0"
)
