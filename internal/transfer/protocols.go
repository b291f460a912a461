package transfer

// Protocol describes an external file-transfer command pair that
// Session drives under a pty: the binary and base arguments for each
// direction, plus the traits Session.Run's caller needs to decide how
// to invoke it.
type Protocol struct {
	Name        string   // Human readable name (e.g., "ZMODEM", "XMODEM")
	SendCommand string   // Command for sending files (e.g., "sz", "sx")
	RecvCommand string   // Command for receiving files (e.g., "rz", "rx")
	SendArgs    []string // Base arguments for sending
	RecvArgs    []string // Base arguments for receiving
	Description string   // Protocol description
	RequiresPTY bool      // Whether protocol requires PTY
	MultiFile   bool      // Whether protocol supports multiple files
}

// Predefined protocols.
var (
	ZMODEM = Protocol{
		Name:        "ZMODEM",
		SendCommand: "sz",
		RecvCommand: "rz",
		SendArgs:    []string{"-b"}, // Binary mode
		RecvArgs:    []string{"-b"}, // Binary mode
		Description: "ZMODEM protocol (fastest, resume capable)",
		RequiresPTY: true,
		MultiFile:   true,
	}

	ZMODEM_8K = Protocol{
		Name:        "ZMODEM-8K",
		SendCommand: "sz",
		RecvCommand: "rz",
		SendArgs:    []string{"-b", "-8"}, // Binary mode, 8K blocks
		RecvArgs:    []string{"-b", "-8"}, // Binary mode, 8K blocks
		Description: "ZMODEM with 8K blocks (faster for large files)",
		RequiresPTY: true,
		MultiFile:   true,
	}

	YMODEM = Protocol{
		Name:        "YMODEM",
		SendCommand: "sb",
		RecvCommand: "rb",
		SendArgs:    []string{"-k"}, // 1K blocks
		RecvArgs:    []string{"-k"}, // 1K blocks
		Description: "YMODEM protocol (batch capable)",
		RequiresPTY: true,
		MultiFile:   true,
	}

	XMODEM = Protocol{
		Name:        "XMODEM",
		SendCommand: "sx",
		RecvCommand: "rx",
		SendArgs:    []string{"-k"}, // 1K blocks
		RecvArgs:    []string{"-k"}, // 1K blocks
		Description: "XMODEM protocol (single file only)",
		RequiresPTY: true,
		MultiFile:   false,
	}

	XMODEM_CRC = Protocol{
		Name:        "XMODEM-CRC",
		SendCommand: "sx",
		RecvCommand: "rx",
		SendArgs:    []string{"-k", "-c"}, // 1K blocks, CRC
		RecvArgs:    []string{"-k", "-c"}, // 1K blocks, CRC
		Description: "XMODEM with CRC (more reliable)",
		RequiresPTY: true,
		MultiFile:   false,
	}
)
