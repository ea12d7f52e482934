package consts

// Commitment scheme identifiers.
const (
	SchemeSHA256Block = "sha256-block"
	SchemeChunkedMiMC = "mimc-chunked"
)

const (
	DefaultChunkCount = 4
	DefaultBlockSize  = 64
)
