package consts

const (
	ProofTypeGroth16 uint8 = 1
)

const (
	ProofCircuitCredentialSHA256V1 = "credential-sha256-v1"
	ProofCircuitCredentialMiMCV1   = "credential-mimc-v1"
)
