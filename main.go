package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/config"
	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/logging"
	"github.com/ytget/tubegrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID = "com.ytget.tubegrab"

	WindowWidth  = 640
	WindowHeight = 280
)

func main() {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewAppTheme())

	settings := config.NewSettings(myApp)
	if err := logging.Setup(settings.GetLogLevel()); err != nil {
		logrus.WithError(err).Warn("Falling back to info logging")
	}
	logrus.WithField("version", version).Info("TubeGrab starting")

	fetcher, err := fetch.New(settings.GetEngine())
	if err != nil {
		logrus.WithError(err).Warn("Unknown fetch engine, using default")
		fetcher = fetch.NewYouTube()
	}

	myWindow := myApp.NewWindow("TubeGrab")
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.NewRootUI(myWindow, myApp, fetcher)

	myWindow.ShowAndRun()
}
