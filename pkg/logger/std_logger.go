package logger

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// stdLoggerConfig holds the viper-sourced knobs for a StdLogger:
// AppName/Environment/ForceLocal control what gets stamped on each
// line, Level filters which severities get through (plumbed by the
// caller, not by StdLogger itself — see the Logger interface), and
// Buffer sizes the async queue between Trace and the console.
//
// Defaults: AppName "Unknown app", Environment "development",
// ForceLocal false, Level "info", Buffer 500.
type stdLoggerConfig struct {
	AppName     string
	Environment string
	ForceLocal  bool
	Level       string
	Buffer      int
}

// traceMessage is one queued log line: a severity, an optional module
// name, and its content. isEvent distinguishes a structured event
// (displayed bare, since it's expected to be self-describing JSON)
// from a simple message (displayed with the app/instance/timestamp
// prefix performSingleLog builds).
type traceMessage struct {
	level   Severity
	name    string
	content string
	isEvent bool
}

// StdLogger writes every Trace call to standard output, through a
// buffered channel drained by one background goroutine, so Trace
// itself never blocks on console I/O (only on the buffer filling up).
// This is what every battlesim binary and Server wires as its
// logger.Logger: run series progress, per-request errors, and DB
// proxy failures all funnel through the same instance.
//
// The `config` holds the viper-sourced display settings.
//
// The `instanceID`/`publicIP` are stamped on every line so logs from
// multiple concurrent instances of the server can be told apart.
//
// The `logChannel` queues traceMessages for performLogging to drain.
//
// The `endChannel` signals performLogging to drain and exit.
//
// The `closed`/`locker` pair guards against a Trace call racing the
// Release that closes logChannel.
//
// The `waiter` lets Release block until the drain goroutine has
// flushed every message queued before it was asked to stop.
type StdLogger struct {
	config     stdLoggerConfig
	instanceID string
	publicIP   string
	logChannel chan traceMessage
	endChannel chan bool
	closed     bool
	locker     sync.Mutex
	waiter     sync.WaitGroup
}

// parseStdLoggerConfig reads Logger.* settings from viper
// (pkg/arguments), returning stdLoggerConfig's defaults for anything
// unset.
func parseStdLoggerConfig() stdLoggerConfig {
	config := stdLoggerConfig{
		AppName:     "Unknown app",
		Environment: "development",
		ForceLocal:  false,
		Level:       "info",
		Buffer:      500,
	}

	if viper.IsSet("Logger.Name") {
		config.AppName = viper.GetString("Logger.Name")
	}
	if viper.IsSet("Logger.Environment") {
		config.Environment = viper.GetString("Logger.Environment")
	}
	if viper.IsSet("Logger.ForceLocal") {
		config.ForceLocal = viper.GetBool("Logger.ForceLocal")
	}
	if viper.IsSet("Logger.Level") {
		config.Level = viper.GetString("Logger.Level")
	}
	if viper.IsSet("Logger.Buffer") {
		config.Buffer = viper.GetInt("Logger.Buffer")
	}

	return config
}

// NewStdLogger builds a StdLogger and starts its drain goroutine.
// instanceID falls back to "local" when empty or when ForceLocal is
// set; publicIP falls back to "localhost" when empty — both keep
// single-machine development logs readable without a real instance
// identity or address.
func NewStdLogger(instanceID string, publicIP string) Logger {
	config := parseStdLoggerConfig()

	log := StdLogger{
		config:     config,
		instanceID: instanceID,
		publicIP:   publicIP,
		logChannel: make(chan traceMessage, config.Buffer),
		endChannel: make(chan bool),
	}

	if len(log.instanceID) == 0 || config.ForceLocal {
		log.instanceID = "local"
	}
	if len(log.publicIP) == 0 {
		log.publicIP = "localhost"
	}

	log.waiter.Add(1)
	go log.performLogging()

	return &log
}

// Release stops the drain goroutine and blocks until it has flushed
// every message queued before this call, so a deferred Release (as
// cmd/battlesim/main.go does) never drops the final lines of a run.
func (log *StdLogger) Release() {
	log.endChannel <- false

	log.locker.Lock()
	log.closed = true
	close(log.logChannel)
	log.locker.Unlock()

	log.waiter.Wait()
}

// Trace queues message for display at level, tagged with module.
// Non-blocking as long as the buffer isn't full; a closed logger
// (post-Release) silently drops the message rather than panicking on
// a send to a closed channel.
func (log *StdLogger) Trace(level Severity, module string, message string) {
	trace := traceMessage{
		level:   level,
		name:    module,
		content: message,
	}

	log.locker.Lock()
	defer log.locker.Unlock()
	if !log.closed {
		log.logChannel <- trace
	}
}

// performLogging drains logChannel until endChannel fires, then keeps
// draining whatever was already queued before returning — so no
// message posted before Release is lost, even though nothing can be
// posted after.
func (log *StdLogger) performLogging() {
	running := true

	for running {
		select {
		case running = <-log.endChannel:
			break
		case trace := <-log.logChannel:
			log.performSingleLog(trace)
		}
	}

	for trace := range log.logChannel {
		log.performSingleLog(trace)
	}

	log.waiter.Done()
}

// performSingleLog renders one trace to standard output: app name,
// instance id and timestamp (all bracketed and colored), severity,
// optional module name, then the message content.
func (log *StdLogger) performSingleLog(trace traceMessage) {
	out := FormatWithBrackets(log.config.AppName, Magenta)
	out += " " + FormatWithBrackets(log.instanceID, Magenta)
	out += " " + FormatWithNoBrackets(time.Now().Format("2006-01-02 15:04:05"), Magenta)
	out += " " + trace.level.String()
	if trace.name != "" {
		out += " " + FormatWithBrackets(trace.name, Cyan)
	}

	out += " " + trace.content

	fmt.Println(out)
}
