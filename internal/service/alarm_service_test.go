package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/code"
)

type mockAlarmRepo struct {
	domain.AlarmRepository
	alarms  []*domain.Alarm
	created []*domain.Alarm
}

func (m *mockAlarmRepo) Create(ctx context.Context, alarm *domain.Alarm, uid int64) (*domain.Alarm, error) {
	m.created = append(m.created, alarm)
	m.alarms = append(m.alarms, alarm)
	return alarm, nil
}

func (m *mockAlarmRepo) ListEnabled(ctx context.Context) ([]*domain.Alarm, error) {
	var out []*domain.Alarm
	for _, a := range m.alarms {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAlarmRepo) UpdateTriggeredDay(ctx context.Context, id string, uid int64, day string) error {
	for _, a := range m.alarms {
		if a.ID == id && a.UID == uid {
			a.TriggeredDay = day
		}
	}
	return nil
}

type mockSettingRepo struct {
	domain.SettingRepository
	soundEnabled bool
}

func (m *mockSettingRepo) GetByUID(ctx context.Context, uid int64) (*domain.Setting, error) {
	s := domain.DefaultSetting(uid)
	s.AlarmSoundEnabled = m.soundEnabled
	return s, nil
}

type mockNotificationService struct {
	NotificationService
	appended []*domain.Notification
}

func (m *mockNotificationService) Append(ctx context.Context, uid int64, n *domain.Notification) (*dto.NotificationDTO, error) {
	n.UID = uid
	m.appended = append(m.appended, n)
	return &dto.NotificationDTO{Type: string(n.Type), Message: n.Message}, nil
}

type mockPusher struct {
	pushes []any
}

func (m *mockPusher) PushToUser(uid int64, action string, content any) int {
	m.pushes = append(m.pushes, content)
	return 1
}

func newAlarmServiceForTest(repo *mockAlarmRepo, notify *mockNotificationService, pusher *mockPusher, at time.Time) *alarmService {
	return &alarmService{
		alarmRepo:           repo,
		settingRepo:         &mockSettingRepo{soundEnabled: true},
		notificationService: notify,
		pusher:              pusher,
		now:                 func() time.Time { return at },
	}
}

func TestAlarmService_Add(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		time        string
		message     string
		wantErr     error
		wantMessage string
	}{
		{name: "valid", time: "09:00", message: "wake up", wantMessage: "wake up"},
		{name: "empty message defaults", time: "21:30", wantMessage: "Alarm"},
		{name: "empty time", time: "", wantErr: code.ErrorAlarmTimeEmpty},
		{name: "bad format", time: "9am", wantErr: code.ErrorAlarmTimeNotValid},
		{name: "out of range", time: "24:00", wantErr: code.ErrorAlarmTimeNotValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAlarmRepo{}
			svc := newAlarmServiceForTest(repo, &mockNotificationService{}, &mockPusher{}, time.Now())

			got, err := svc.Add(ctx, 1, &dto.AlarmCreateRequest{Time: tt.time, Message: tt.message})
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("Add error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMessage)
			}
			if !got.Enabled {
				t.Error("new alarm should default to enabled")
			}
		})
	}
}

// 同一分钟内多次轮询只触发一次，次日同一时间重新触发
func TestAlarmService_Poll_FiresOncePerDay(t *testing.T) {
	ctx := context.Background()
	repo := &mockAlarmRepo{alarms: []*domain.Alarm{
		{ID: "a1", UID: 1, Time: "09:00", Message: "standup", Enabled: true},
	}}
	notify := &mockNotificationService{}
	pusher := &mockPusher{}

	day1 := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	svc := newAlarmServiceForTest(repo, notify, pusher, day1)

	// 09:00:00 / 09:00:30 / 09:00:59 三次轮询
	for _, offset := range []time.Duration{0, 30 * time.Second, 59 * time.Second} {
		at := day1.Add(offset)
		svc.now = func() time.Time { return at }
		if err := svc.Poll(ctx); err != nil {
			t.Fatalf("Poll failed: %v", err)
		}
	}

	if len(notify.appended) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notify.appended))
	}
	if notify.appended[0].Type != domain.NotificationTypeAlarm {
		t.Errorf("notification type = %q, want alarm", notify.appended[0].Type)
	}
	if len(pusher.pushes) != 1 {
		t.Errorf("pushes = %d, want 1", len(pusher.pushes))
	}
	push, ok := pusher.pushes[0].(*AlarmFiredPush)
	if !ok || !push.PlaySound {
		t.Errorf("push = %+v, want playSound true", pusher.pushes[0])
	}

	// 次日同一时间重新触发
	day2 := day1.AddDate(0, 0, 1)
	svc.now = func() time.Time { return day2 }
	if err := svc.Poll(ctx); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if len(notify.appended) != 2 {
		t.Errorf("notifications after next day = %d, want 2", len(notify.appended))
	}
}

func TestAlarmService_Poll_SkipsDisabledAndWrongMinute(t *testing.T) {
	ctx := context.Background()
	repo := &mockAlarmRepo{alarms: []*domain.Alarm{
		{ID: "a1", UID: 1, Time: "09:00", Enabled: false},
		{ID: "a2", UID: 1, Time: "09:01", Enabled: true},
	}}
	notify := &mockNotificationService{}

	at := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	svc := newAlarmServiceForTest(repo, notify, &mockPusher{}, at)

	if err := svc.Poll(ctx); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if len(notify.appended) != 0 {
		t.Errorf("notifications = %d, want 0", len(notify.appended))
	}
}
