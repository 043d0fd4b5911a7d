package cmdutil

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

const maxLineSize = 1024 * 1024

// ReadKLines reads one kline message per line and calls fn for each parsed kline.
// Blank lines and lines starting with # are skipped, unparsable lines are logged and skipped.
// It returns when the reader is drained, fn returns an error or the context is done.
// A done context returns right away even while the reader blocks on an idle stdin,
// the scanning goroutine exits when the reader returns.
func ReadKLines(ctx context.Context, r io.Reader, fn func(k types.KLine) error) (lines int, err error) {
	lineC := make(chan []byte)
	errC := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lineC)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lineC <- line:
			case <-done:
				return
			}
		}

		errC <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return lines, ctx.Err()

		case line, ok := <-lineC:
			if !ok {
				if err := <-errC; err != nil {
					return lines, errors.Wrap(err, "unable to read klines")
				}
				return lines, nil
			}

			// a cancelled context wins over the lines already scanned
			if ctx.Err() != nil {
				return lines, ctx.Err()
			}

			lines++
			line = bytes.TrimSpace(line)
			if len(line) == 0 || line[0] == '#' {
				continue
			}

			k, err := types.ParseKLine(line)
			if err != nil {
				log.WithError(err).Warnf("skipped line %d", lines)
				continue
			}

			if err := fn(k); err != nil {
				return lines, err
			}
		}
	}
}
