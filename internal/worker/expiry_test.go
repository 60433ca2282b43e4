//go:build unit

package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-booking/internal/worker"
	commandsmock "flight-booking/tests/mock/commands"

	"go.uber.org/mock/gomock"
)

func TestExpiryWorkerTick(t *testing.T) {
	cases := []struct {
		name  string
		setup func(m *commandsmock.MockExpiryCommands)
	}{
		{
			name: "期限切れ処理と冪等キー削除を両方実行する",
			setup: func(m *commandsmock.MockExpiryCommands) {
				m.EXPECT().ExpireDue(gomock.Any()).Return(3, nil)
				m.EXPECT().PurgeIdempotencyKeys(gomock.Any()).Return(int64(12), nil)
			},
		},
		{
			name: "期限切れ処理が失敗しても削除は続ける",
			setup: func(m *commandsmock.MockExpiryCommands) {
				m.EXPECT().ExpireDue(gomock.Any()).Return(0, errors.New("deadlock detected"))
				m.EXPECT().PurgeIdempotencyKeys(gomock.Any()).Return(int64(0), nil)
			},
		},
		{
			name: "削除の失敗は次回に持ち越す",
			setup: func(m *commandsmock.MockExpiryCommands) {
				m.EXPECT().ExpireDue(gomock.Any()).Return(0, nil)
				m.EXPECT().PurgeIdempotencyKeys(gomock.Any()).Return(int64(0), errors.New("db down"))
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			expiry := commandsmock.NewMockExpiryCommands(ctrl)
			c.setup(expiry)

			worker.NewExpiryWorker(expiry, time.Minute).Tick(context.Background())
		})
	}
}

func TestExpiryWorkerRunsUntilStopped(t *testing.T) {
	ctrl := gomock.NewController(t)
	expiry := commandsmock.NewMockExpiryCommands(ctrl)

	ticked := make(chan struct{}, 1)
	expiry.EXPECT().ExpireDue(gomock.Any()).Return(0, nil).MinTimes(1)
	expiry.EXPECT().PurgeIdempotencyKeys(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		select {
		case ticked <- struct{}{}:
		default:
		}
		return 0, nil
	}).MinTimes(1)

	w := worker.NewExpiryWorker(expiry, 10*time.Millisecond)
	w.Start()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not tick")
	}
	w.Stop()
}
