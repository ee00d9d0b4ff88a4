package constants

const (
	// SecretWords is the number of 64-bit words in a secret table.
	SecretWords = 9
	// MaxSecretAttempts caps the rejection-sampling draws spent on one secret slot.
	// Observed worst slots need a few million draws.
	MaxSecretAttempts = 1 << 30
	// SecretPollInterval is how many draws pass between context checks.
	SecretPollInterval = 4096
)

// DefaultSecret is the process-wide hashing table. Words are odd, have 32 bits set and
// sit at Hamming distance 32 from each other.
var DefaultSecret = [SecretWords]uint64{
	0x9ad1e8e2aa5a5c4b,
	0xaaaad2335647d21b,
	0xb8ac35e269d1b495,
	0xa98d653cb2b4c959,
	0x71a5b853b43ca68b,
	0x2b55934dc35c9655,
	0x746ae48ed4d41e4d,
	0xa3d8c38e78aaa6a9,
	0x1bca69c565658bc3,
}

// PopcountFourBytes lists every byte value with exactly four bits set, ascending.
// Eight of them packed together always give a word with 32 bits set.
var PopcountFourBytes = [...]byte{
	15, 23, 27, 29, 30, 39, 43, 45, 46, 51, 53, 54, 57, 58, 60,
	71, 75, 77, 78, 83, 85, 86, 89, 90, 92, 99, 101, 102, 105, 106, 108,
	113, 114, 116, 120, 135, 139, 141, 142, 147, 149, 150, 153, 154, 156,
	163, 165, 166, 169, 170, 172, 177, 178, 180, 184, 195, 197, 198,
	201, 202, 204, 209, 210, 212, 216, 225, 226, 228, 232, 240,
}
