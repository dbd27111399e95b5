package lsp

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestJSONRPCFramingMultipleMessages(t *testing.T) {
	var buf bytes.Buffer
	msg1 := []byte(`{"jsonrpc":"2.0","method":"initialize"}`)
	msg2 := []byte(`{"jsonrpc":"2.0","method":"shutdown"}`)

	if err := writeMessage(&buf, msg1); err != nil {
		t.Fatalf("write message 1: %v", err)
	}
	if err := writeMessage(&buf, msg2); err != nil {
		t.Fatalf("write message 2: %v", err)
	}

	reader := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	got1, err := readMessage(reader)
	if err != nil {
		t.Fatalf("read message 1: %v", err)
	}
	got2, err := readMessage(reader)
	if err != nil {
		t.Fatalf("read message 2: %v", err)
	}

	if string(got1) != string(msg1) {
		t.Fatalf("unexpected message 1: %s", string(got1))
	}
	if string(got2) != string(msg2) {
		t.Fatalf("unexpected message 2: %s", string(got2))
	}
}

func TestReadMessageIgnoresExtraHeaders(t *testing.T) {
	raw := "Content-Type: application/vscode-jsonrpc\r\n" +
		"content-length: 2\r\n\r\n{}"
	reader := bufio.NewReader(strings.NewReader(raw))
	payload, err := readMessage(reader)
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	if string(payload) != "{}" {
		t.Fatalf("unexpected payload: %s", string(payload))
	}
}

func TestReadMessageRequiresContentLength(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("Content-Type: text\r\n\r\n{}"))
	if _, err := readMessage(reader); err == nil {
		t.Fatal("expected error for missing Content-Length")
	}
}
