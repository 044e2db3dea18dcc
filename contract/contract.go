//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-router/domain"
	"chat-router/state"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Dispatcher admits an action into the serialized pipeline.
type Dispatcher interface {
	Dispatch(action state.Action) error
}

// StateSource hands out the latest committed view.
type StateSource interface {
	View() state.View
}

// LivenessProbe tells whether the pipeline still makes progress.
type LivenessProbe interface {
	Stalled(d time.Duration) bool
}

// HealthReporter publishes the serving status to health checkers.
type HealthReporter interface {
	SetServing(serving bool)
}

// Observer is told that the state changed; it reads the view on its own schedule.
type Observer interface {
	Notify()
}

// CustomerNotifier pushes to every connection of a chat customer.
type CustomerNotifier interface {
	Accept(chatID string, accept bool)
	Message(chatID string, msg domain.Message)
	Status(chatID string, status domain.ChatStatus)
	Close(chatID string, by *domain.Identity)
}

// OperatorNotifier pushes to operator connections, per operator or per chat room.
// Open joins the operator connections (or only connID) to the chat room and
// returns once one of them accepted the chat.
type OperatorNotifier interface {
	Open(ctx context.Context, chat domain.Chat, operatorID, connID string) error
	Notify(operatorID, event string, chat domain.Chat)
	Close(chat domain.Chat, by *domain.Identity)
	Leave(chat domain.Chat, operatorID string)
	Message(chatID string, msg domain.Message)
}

type AgentNotifier interface {
	Message(msg domain.Message)
}

// PatchPublisher delivers a broadcast patch to the local dashboard channel.
type PatchPublisher interface {
	Update(oldVersion, newVersion string, patch []byte)
}

type EventSink interface {
	Consume(ctx context.Context, e domain.LifecycleEvent) error
}

type MessageFilter interface {
	Filter(msg domain.Message) domain.Message
}

type LocaleDetector interface {
	Detect(text string) (string, bool)
}

type SnapshotRepository interface {
	Save(snapshot state.Snapshot) error
	Load() (state.Snapshot, bool, error)
}
