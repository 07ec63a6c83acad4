package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errPassphraseMismatch = errors.New("passphrases do not match")

// GetSimpleText writes prompt and a "> " marker to w, then reads one line.
// A last line without a newline still counts at EOF.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a passphrase from the terminal without echo. The caller
// wipes the returned slice.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetNewPassword asks for a passphrase twice through get and returns it
// only when both entries match and are not empty.
func GetNewPassword(get func(string, io.Writer) ([]byte, error), w io.Writer) ([]byte, error) {
	pass, err := get("New passphrase", w)
	if err != nil {
		return nil, err
	}

	again, err := get("Repeat passphrase", w)
	if err != nil {
		common.WipeByteArray(pass)
		return nil, err
	}
	defer common.WipeByteArray(again)

	if len(pass) == 0 || !bytes.Equal(pass, again) {
		common.WipeByteArray(pass)
		return nil, errPassphraseMismatch
	}
	return pass, nil
}
