package async

import "context"

// ErrAble runs fn off-thread. The channel is buffered so the goroutine can
// finish even when nobody is left to receive.
func ErrAble(fn func() error) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}

// AwaitCtx waits for fn or the context, whichever finishes first. The
// goroutine is not cancelled, only abandoned.
func AwaitCtx(ctx context.Context, fn func() error) error {
	select {
	case err := <-ErrAble(fn):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
