package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func init() {
	log.SetLevel(log.LevelInfo)
}

// Setup mirrors log output to a daily file under dir in addition to stdout.
func Setup(dir string) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		fmt.Println("❌ Could not create log directory:", err)
		return
	}

	fileName := filepath.Join(dir, fmt.Sprintf("app_%s.log", time.Now().Format("02-01-2006")))
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Println("❌ Could not open log file:", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.Info("🚀 Logger initialized successfully!")
}

// SetDebug toggles debug output.
func SetDebug(enabled bool) {
	if enabled {
		log.SetLevel(log.LevelDebug)
		return
	}
	log.SetLevel(log.LevelInfo)
}

func Success(message string) {
	log.Info("✅ " + message)
}

func Error(message string, err error) {
	if err != nil {
		log.Error("❌ " + message + ": " + err.Error())
	} else {
		log.Error("❌ " + message)
	}
}

func Warning(message string) {
	log.Warn("⚠️ " + message)
}

func Debug(message string) {
	log.Debug("🐛 " + message)
}

func Info(message string) {
	log.Info("ℹ️ " + message)
}

func Fatal(message string) {
	log.Fatal("💥 " + message)
}

func Printf(format string, args ...interface{}) {
	log.Info(fmt.Sprintf("📝 "+format, args...))
}
