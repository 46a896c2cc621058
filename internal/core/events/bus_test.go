package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Events Module Suite")
}

var _ = ginkgo.Describe("EventBus", func() {
	var (
		bus *EventBus
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		bus = NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = context.Background()
	})

	ginkgo.Describe("Publish", func() {
		ginkgo.It("should deliver asynchronously to every subscriber", func() {
			delivered := make(chan string, 2)
			handler := func(name string) Handler {
				return func(_ context.Context, event Event) error {
					delivered <- name
					return nil
				}
			}
			bus.Subscribe(EventTypeUserCreated, handler("first"))
			bus.Subscribe(EventTypeUserCreated, handler("second"))

			bus.Publish(ctx, NewUserCreatedEvent(10, 1, "User"))

			gomega.Eventually(delivered).WithTimeout(time.Second).Should(gomega.Receive())
			gomega.Eventually(delivered).WithTimeout(time.Second).Should(gomega.Receive())
		})

		ginkgo.It("should do nothing for an event type without subscribers", func() {
			bus.Publish(ctx, NewUserDeletedEvent(10, 1))
		})
	})

	ginkgo.Describe("PublishSync", func() {
		ginkgo.It("should deliver in registration order", func() {
			var order []string
			record := func(name string) Handler {
				return func(_ context.Context, event Event) error {
					order = append(order, name)
					return nil
				}
			}
			bus.Subscribe(EventTypeLoginSucceeded, record("first"))
			bus.Subscribe(EventTypeLoginSucceeded, record("second"))

			err := bus.PublishSync(ctx, NewLoginSucceededEvent(10, "a@b.com"))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(order).To(gomega.Equal([]string{"first", "second"}))
		})

		ginkgo.It("should stop at the first failing handler", func() {
			var reached []string
			bus.Subscribe(EventTypePasswordChanged, func(_ context.Context, event Event) error {
				reached = append(reached, "first")
				return errors.New("sink unavailable")
			})
			bus.Subscribe(EventTypePasswordChanged, func(_ context.Context, event Event) error {
				reached = append(reached, "second")
				return nil
			})

			err := bus.PublishSync(ctx, NewPasswordChangedEvent(10))

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(reached).To(gomega.Equal([]string{"first"}))
		})
	})
})
