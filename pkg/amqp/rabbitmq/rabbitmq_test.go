/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The happy-path publish/listen round trip needs a running broker:
// docker run -p 5672:5672 rabbitmq:3.8
func TestPublisher_Publish(t *testing.T) {
	t.Run("publish and listen", func(t *testing.T) {
		addy := "amqp://localhost:5672/"
		queue := "test-queue"

		publisher, err := NewPublisher(addy, queue)
		if err != nil {
			t.Skip("no RabbitMQ instance available")
		}

		listener, err := NewListener(addy, queue)
		require.NoError(t, err)

		msgCh := make(chan []byte, 1)
		go func() {
			ch, err := listener.Listen()
			require.NoError(t, err)

			incoming := <-ch
			msgCh <- incoming.Body
		}()

		err = publisher.Publish([]byte("{}"), "application/json")
		require.NoError(t, err)

		err = publisher.Close()
		require.NoError(t, err)

		result := <-msgCh
		require.Equal(t, []byte("{}"), result)

		err = listener.Close()
		require.NoError(t, err)
	})

	t.Run("bad address publisher", func(t *testing.T) {
		publisher, err := NewPublisher("amqp://localhost:9999/", "test-queue")
		require.Error(t, err)
		require.Nil(t, publisher)
	})

	t.Run("bad address listener", func(t *testing.T) {
		listener, err := NewListener("amqp://localhost:9999/", "test-queue")
		require.Error(t, err)
		require.Nil(t, listener)
	})
}
