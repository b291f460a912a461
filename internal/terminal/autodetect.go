package terminal

import "bytes"

// transferMarkers are the start-of-header bytes XMODEM/YMODEM/ZMODEM
// senders emit that an AutoFileTransfer detector watches a live stream
// for, the same three protocols internal/transfer implements.
var transferMarkers = [][]byte{
	{'*', 'C'},                   // XMODEM-CRC NAK-equivalent probe (sender side rare; kept for symmetry)
	{0x18, 'B', '0', '0', '1'},   // YMODEM CAN + block header prefix, approximate
	{'*', '*', 'B', '0', '0', 0}, // ZMODEM ZRQINIT prefix, approximate ("**\x18B00...")
}

// AutoFileTransfer watches an incoming byte stream for the start of an
// XMODEM/YMODEM/ZMODEM transfer so the orchestrator can hand control to
// internal/transfer without the user explicitly requesting a download.
type AutoFileTransfer struct {
	window []byte
}

// NewAutoFileTransfer returns a detector with an empty sliding window.
func NewAutoFileTransfer() *AutoFileTransfer { return &AutoFileTransfer{} }

const autoDetectWindow = 8

// Feed appends b to the sliding window and reports which marker, if any,
// was just completed.
func (d *AutoFileTransfer) Feed(b byte) (protocol string, triggered bool) {
	d.window = append(d.window, b)
	if len(d.window) > autoDetectWindow {
		d.window = d.window[len(d.window)-autoDetectWindow:]
	}
	names := []string{"xmodem", "ymodem", "zmodem"}
	for i, marker := range transferMarkers {
		if bytes.HasSuffix(d.window, marker) {
			return names[i], true
		}
	}
	return "", false
}

// EmsiCredentials is what IEmsiAutoLogin sends back when an EMSI
// handshake is detected.
type EmsiCredentials struct {
	Name     string
	Password string
	Alias    string
}

// IEmsiAutoLogin watches for the EMSI inquiry sequence ("**EMSI_INQ")
// and answers it with stored credentials rather than waiting for a human
// to type a login at the prompt.
type IEmsiAutoLogin struct {
	creds  EmsiCredentials
	window []byte
}

// NewIEmsiAutoLogin returns a detector that will answer with creds once
// triggered.
func NewIEmsiAutoLogin(creds EmsiCredentials) *IEmsiAutoLogin {
	return &IEmsiAutoLogin{creds: creds}
}

var emsiInquiry = []byte("**EMSI_INQ")

// Feed appends b to the sliding window and returns a login reply once
// the inquiry sequence completes, or "" otherwise.
func (d *IEmsiAutoLogin) Feed(b byte) string {
	d.window = append(d.window, b)
	if len(d.window) > len(emsiInquiry) {
		d.window = d.window[len(d.window)-len(emsiInquiry):]
	}
	if bytes.Equal(d.window, emsiInquiry) {
		return "**EMSI_DAT" + d.creds.Name + ":" + d.creds.Alias + ":" + d.creds.Password + "\r\n"
	}
	return ""
}
