package notifysvc

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level of a user-facing notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "ok"
	case LevelError:
		return "error"
	}
	return "info"
}

type Notification struct {
	Level   Level
	Message string
}

// Service surfaces user-facing notifications (the toast analog).
type Service interface {
	Notify(level Level, message string)
}

type consoleService struct {
	out io.Writer
}

var _ Service = (*consoleService)(nil)

func NewConsoleService(out io.Writer) Service {
	if out == nil {
		out = os.Stderr
	}
	return &consoleService{out: out}
}

func (svc consoleService) Notify(level Level, message string) {
	_, _ = fmt.Fprintf(svc.out, "[%s] %s\n", level, message)
}

// Mock records notifications for tests.
type Mock struct {
	mutex         sync.Mutex
	Notifications []Notification
}

var _ Service = (*Mock)(nil)

func NewServiceMock() *Mock {
	return &Mock{}
}

func (svc *Mock) Notify(level Level, message string) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	svc.Notifications = append(svc.Notifications, Notification{Level: level, Message: message})
}

// Last returns the most recent notification, if any.
func (svc *Mock) Last() (Notification, bool) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if len(svc.Notifications) == 0 {
		return Notification{}, false
	}
	return svc.Notifications[len(svc.Notifications)-1], true
}

// Reset drops all recorded notifications.
func (svc *Mock) Reset() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	svc.Notifications = nil
}
