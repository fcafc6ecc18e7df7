// MIT License
//
// Copyright (c) 2023-2026 Starling Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package future_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starling-run/starling/future"
)

func TestFutureCompleteThenAwait(t *testing.T) {
	f := future.New[int]()
	f.Complete(42, nil)

	got, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, got)
}

func TestFutureAwaitBlocksUntilComplete(t *testing.T) {
	f := future.New[string]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		f.Complete("done", nil)
	}()

	got, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "done", got)
}

func TestFutureCompleteOnlyAppliesOnce(t *testing.T) {
	f := future.New[int]()
	f.Complete(1, nil)
	f.Complete(2, errors.New("too late"))

	got, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestFutureAwaitRespectsContextCancellation(t *testing.T) {
	f := future.New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFutureDoneChannelClosesOnComplete(t *testing.T) {
	f := future.New[int]()
	select {
	case <-f.Done():
		t.Fatal("future reported done before Complete")
	default:
	}

	f.Complete(7, nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("future did not report done after Complete")
	}
}
