package notify

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/javanhut/machete/internal/monitor"
	"github.com/javanhut/machete/internal/proctable"
	"go.uber.org/zap"
)

const appName = "Process Machete"

// Notifier shows desktop notifications for kills and for the end of a run.
// Every other event is ignored. Kill notifications are sent in the
// background; Done waits for them before sending the summary.
type Notifier struct {
	useDesktopNotifications bool
	log                     *zap.Logger
	send                    func(title, message string) error
	pending                 sync.WaitGroup
}

func New(log *zap.Logger) *Notifier {
	return &Notifier{
		useDesktopNotifications: checkDesktopNotificationSupport(),
		log:                     log,
		send:                    sendNotification,
	}
}

func (n *Notifier) Killed(h proctable.Handle) {
	if !n.useDesktopNotifications {
		return
	}
	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		n.notify("Process Killed", fmt.Sprintf("Killed %s", h))
	}()
}

func (n *Notifier) Done(s monitor.Summary) {
	n.pending.Wait()
	n.notify("Done", s.String())
}

func (n *Notifier) Started(int) {}
func (n *Notifier) Found(proctable.Handle) {}
func (n *Notifier) KillFailed(proctable.Handle, error) {}
func (n *Notifier) Vanished(int32) {}
func (n *Notifier) Surrendered(bool) {}

func (n *Notifier) notify(title, message string) {
	if !n.useDesktopNotifications {
		return
	}
	if err := n.send(title, message); err != nil {
		n.log.Debug("desktop notification failed", zap.String("title", title), zap.Error(err))
	}
}

func sendNotification(title, message string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, message, appName+": "+title)
		return exec.Command("osascript", "-e", script).Run()
	case "linux":
		return exec.Command("notify-send", "--app-name", appName, title, message).Run()
	case "windows":
		return toastCommand(title, message).Run()
	}
	return nil
}

// toastScript reads the notification text from the environment and
// XML-escapes it. The text is never part of the script itself.
const toastScript = `
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null

$title = [Security.SecurityElement]::Escape($env:MACHETE_TITLE)
$message = [Security.SecurityElement]::Escape($env:MACHETE_MESSAGE)
$template = '<toast><visual><binding template="ToastText02"><text id="1">' + $title + '</text><text id="2">' + $message + '</text></binding></visual></toast>'

$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml($template)
$toast = New-Object Windows.UI.Notifications.ToastNotification $xml
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier($env:MACHETE_APP).Show($toast)
`

func toastCommand(title, message string) *exec.Cmd {
	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", toastScript)
	cmd.Env = append(os.Environ(),
		"MACHETE_APP="+appName,
		"MACHETE_TITLE="+title,
		"MACHETE_MESSAGE="+message,
	)
	return cmd
}

func checkDesktopNotificationSupport() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	case "linux":
		// notify-send ships with libnotify
		_, err := exec.LookPath("notify-send")
		return err == nil
	}
	return false
}

var _ monitor.Sink = (*Notifier)(nil)
