package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
	AndroidAM       = "am"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// LinuxFileManagers are tried in order when xdg-open is unavailable
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// runCommand executes an external command and waits for it
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// lookPath reports whether a binary is on PATH
var lookPath = func(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// OpenFileInManager opens the system file manager with the file selected where
// the platform supports selection, otherwise its parent directory
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbs(filePath)
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{"path": absPath, "os": runtime.GOOS})
	log.Debug("Revealing file in manager")

	switch runtime.GOOS {
	case OSDarwin:
		return runCommand(OpenCommand, MacOSSelectFlag, absPath)
	case OSWindows:
		return runCommand(ExplorerCommand, WindowsSelectParam+absPath)
	case OSLinux:
		return openDirLinux(filepath.Dir(absPath))
	case OSAndroid:
		return runCommand(AndroidAM, "start", "-a", "android.intent.action.VIEW", "-d", "file://"+filepath.Dir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirLinux opens dir with xdg-open, falling back to known file managers.
// File selection is not standardized on Linux.
func openDirLinux(dir string) error {
	err := runCommand(XDGOpenCommand, dir)
	if err == nil {
		return nil
	}
	logrus.WithError(err).Debug("xdg-open failed, trying file managers")

	for _, fm := range LinuxFileManagers {
		if lookPath(fm) {
			return runCommand(fm, dir)
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbs(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return runCommand(OpenCommand, absPath)
	case OSWindows:
		return runCommand(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath)
	case OSLinux:
		return runCommand(XDGOpenCommand, absPath)
	case OSAndroid:
		return runCommand(AndroidAM, "start", "-a", "android.intent.action.VIEW", "-d", "file://"+absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func existingAbs(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// EnsureParentDir creates the directory that will hold filePath
func EnsureParentDir(filePath string) error {
	return CreateDirectoryIfNotExists(filepath.Dir(filePath))
}

// IsAndroid reports whether the process runs as a Fyne Android app
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so"
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	if IsAndroid() {
		return "/sdcard/Download", nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Downloads"), nil
}
