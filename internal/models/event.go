package models

const FileLogFatal = "fatal"
const FileLogErrors = "errors"
const FileLogRequests = "requests"
const FileLogUploads = "uploads"

var LogFiles = map[string]string{
	"fatal.txt":    FileLogFatal,
	"errors.txt":   FileLogErrors,
	"requests.txt": FileLogRequests,
	"uploads.txt":  FileLogUploads,
}

type EventName string

const PostCreated EventName = "posts.post.created"
const PostDeleted EventName = "posts.post.deleted"
const OrderUpdated EventName = "posts.order.updated"

var PostEvents = []EventName{
	PostCreated,
	PostDeleted,
	OrderUpdated,
}

const SetLogDebugMode EventName = "log.mode.debug"
const SetLogInfoMode EventName = "log.mode.info"

const AppExit EventName = "app.exit"

const LogToFile EventName = "fileLogger.log.data"

var FileLoggerEvents = []EventName{
	LogToFile,
}

type Listener interface {
	Listen(eventName EventName, event interface{})
}

type Job struct {
	EventName EventName
	EventType interface{}
}

type FileLoggerEvent struct {
	Src         string
	Data        string
	WithoutTime bool
	ToDebug     bool
}

type PostCreatedEvent struct {
	Post Post
}

type PostDeletedEvent struct {
	ID    string
	Title string
}

type OrderUpdatedEvent struct {
	Sequence []string
}
