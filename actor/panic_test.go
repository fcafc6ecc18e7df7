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

package actor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starling-run/starling/actor"
	apierrors "github.com/starling-run/starling/errors"
)

// A panicking invoke handler has no caller to report failure to, so it is
// treated as fatal: the panic is recovered, logged, and the mailbox closes.
// Every later Ask against the same actor fails with ErrDead.
func TestInvokePanicClosesMailbox(t *testing.T) {
	pid := actor.Spawn[counter](actor.InlineScheduler{}, nil, func() counter { return counter{} })
	defer pid.Close()

	ref := pid.Self()
	ref.Invoke(func(*counter) { panic("boom") })

	_, err := actor.Ask(ref, func(c *counter) (int, error) { return c.get() }).Await(context.Background())
	require.ErrorIs(t, err, apierrors.ErrDead)
}

// A panicking ask handler delivers the failure to its own caller instead of
// killing the actor: the future completes with a *HandlerPanicError
// wrapping ErrHandlerPanic, and the actor keeps serving later messages.
func TestAskPanicCompletesFutureAndActorSurvives(t *testing.T) {
	pid := actor.Spawn[counter](actor.InlineScheduler{}, nil, func() counter { return counter{} })
	defer pid.Close()

	ref := pid.Self()
	_, err := actor.Ask(ref, func(*counter) (int, error) { panic("kaboom") }).Await(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, apierrors.ErrHandlerPanic)

	var panicErr *apierrors.HandlerPanicError
	require.ErrorAs(t, err, &panicErr)
	require.Equal(t, "kaboom", panicErr.Recovered)

	ref.Invoke(func(c *counter) { c.incr() })
	got, err := actor.Ask(ref, func(c *counter) (int, error) { return c.get() }).Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, got)
}
