package server

import (
	"io"
	"os"
)

// Stdio returns a connection over the process standard input and output.
func Stdio() io.ReadWriteCloser {
	return &stdioReadWriteCloser{read: os.Stdin, write: os.Stdout}
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
