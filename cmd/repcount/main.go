package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cli/browser"
	"github.com/joho/godotenv"

	"github.com/arvindkm/repcount/internal/app"
	"github.com/arvindkm/repcount/internal/server"
	"github.com/arvindkm/repcount/internal/store"
	"github.com/arvindkm/repcount/internal/tray"
)

func main() {
	fmt.Println("RepCount - Workout Rep Tracker")

	// Optional .env overrides; missing file is fine
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	dataDir := os.Getenv("REPCOUNT_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, ".repcount")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "repcount.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cameraID := 0
	if v := os.Getenv("REPCOUNT_CAMERA_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cameraID = id
		}
	}

	a, err := app.New(app.Config{
		Store:    st,
		CameraID: cameraID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Printf("Camera pipeline not started: %v", err)
	}
	defer a.Stop()

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	})

	port := os.Getenv("REPCOUNT_PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	dashboardURL := "http://localhost" + addr

	// systray must run on the main goroutine
	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if counter := a.Counter(); counter != nil {
			counter.SetActive(enabled)
		}
	})
	tr.OnDashboard(func() {
		if err := browser.OpenURL(dashboardURL); err != nil {
			log.Printf("Failed to open dashboard: %v", err)
		}
	})
	tr.OnQuit(func() {
		log.Println("Shutting down")
	})

	// Mirror counted reps in the tray menu
	if counter := a.Counter(); counter != nil {
		prev := counter.OnRep
		counter.OnRep = func(count int) {
			if prev != nil {
				prev(count)
			}
			tr.SetRepCount(count)
		}
	}

	tr.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks "web", "../web", "../../web", and <dataDir>/web, returning
// the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
