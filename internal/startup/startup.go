package startup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"video-sprite-generator/internal/logging"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
}

// Config holds all application configuration
type Config struct {
	Port         string
	VideoDir     string
	ThumbnailDir string

	// Sprite geometry and sampling cadence
	ThumbWidth    int
	ThumbHeight   int
	ThumbsPerRow  int
	FrameInterval time.Duration

	// Per-operation subprocess/network bounds
	DownloadTimeout time.Duration
	ProbeTimeout    time.Duration
	ExtractTimeout  time.Duration
	TileTimeout     time.Duration

	LogStaticFiles  bool
	LogHealthChecks bool
	MetricsEnabled  bool
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	config := &Config{
		Port:            getEnv("PORT", "5000"),
		VideoDir:        getEnv("VIDEO_DIR", "temp_videos"),
		ThumbnailDir:    getEnv("THUMBNAIL_DIR", "temp_thumbnails"),
		ThumbWidth:      getEnvInt("THUMB_WIDTH", 160),
		ThumbHeight:     getEnvInt("THUMB_HEIGHT", 90),
		ThumbsPerRow:    getEnvInt("THUMBS_PER_ROW", 10),
		FrameInterval:   getEnvDuration("THUMBNAIL_INTERVAL", 5*time.Second),
		DownloadTimeout: getEnvDuration("DOWNLOAD_TIMEOUT", 120*time.Second),
		ProbeTimeout:    getEnvDuration("PROBE_TIMEOUT", 20*time.Second),
		ExtractTimeout:  getEnvDuration("EXTRACT_TIMEOUT", 30*time.Second),
		TileTimeout:     getEnvDuration("TILE_TIMEOUT", 120*time.Second),
		LogStaticFiles:  getEnvBool("LOG_STATIC_FILES", false),
		LogHealthChecks: getEnvBool("LOG_HEALTH_CHECKS", true),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
	}

	logging.Info("  PORT:                %s", config.Port)
	logging.Info("  VIDEO_DIR:           %s", config.VideoDir)
	logging.Info("  THUMBNAIL_DIR:       %s", config.ThumbnailDir)
	logging.Info("  THUMB_WIDTH:         %d", config.ThumbWidth)
	logging.Info("  THUMB_HEIGHT:        %d", config.ThumbHeight)
	logging.Info("  THUMBS_PER_ROW:      %d", config.ThumbsPerRow)
	logging.Info("  THUMBNAIL_INTERVAL:  %s", config.FrameInterval)
	logging.Info("  DOWNLOAD_TIMEOUT:    %s", config.DownloadTimeout)
	logging.Info("  PROBE_TIMEOUT:       %s", config.ProbeTimeout)
	logging.Info("  EXTRACT_TIMEOUT:     %s", config.ExtractTimeout)
	logging.Info("  TILE_TIMEOUT:        %s", config.TileTimeout)
	logging.Info("  METRICS_ENABLED:     %v", config.MetricsEnabled)
	logging.Info("  LOG_STATIC_FILES:    %v", config.LogStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", config.LogHealthChecks)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	if err := config.validate(); err != nil {
		return nil, err
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	var err error
	config.VideoDir, err = filepath.Abs(config.VideoDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve video directory path: %w", err)
	}
	logging.Info("  Video directory (absolute):     %s", config.VideoDir)

	config.ThumbnailDir, err = filepath.Abs(config.ThumbnailDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve thumbnail directory path: %w", err)
	}
	logging.Info("  Thumbnail directory (absolute): %s", config.ThumbnailDir)

	// Both directories are required: downloads land in one, job
	// workspaces in the other.
	if err := ensureDirectory(config.VideoDir, "video"); err != nil {
		return nil, fmt.Errorf("video directory error: %w", err)
	}
	if err := testWriteAccess(config.VideoDir); err != nil {
		return nil, fmt.Errorf("video directory is not writable: %w", err)
	}
	logging.Info("  [OK] Video directory is writable")

	if err := ensureDirectory(config.ThumbnailDir, "thumbnail"); err != nil {
		return nil, fmt.Errorf("thumbnail directory error: %w", err)
	}
	if err := testWriteAccess(config.ThumbnailDir); err != nil {
		return nil, fmt.Errorf("thumbnail directory is not writable: %w", err)
	}
	logging.Info("  [OK] Thumbnail directory is writable")

	return config, nil
}

func (c *Config) validate() error {
	if c.ThumbWidth <= 0 || c.ThumbHeight <= 0 {
		return fmt.Errorf("thumbnail dimensions must be positive, got %dx%d", c.ThumbWidth, c.ThumbHeight)
	}
	if c.ThumbsPerRow <= 0 {
		return fmt.Errorf("THUMBS_PER_ROW must be positive, got %d", c.ThumbsPerRow)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("THUMBNAIL_INTERVAL must be positive, got %s", c.FrameInterval)
	}
	return nil
}

// LogToolchainInit logs the media toolchain check at startup
func LogToolchainInit() {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("MEDIA TOOLCHAIN")
	logging.Info("------------------------------------------------------------")

	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if err := checkTool(tool); err != nil {
			logging.Warn("  %s check failed: %v", tool, err)
			logging.Warn("  Sprite generation will fail until %s is installed", tool)
		} else {
			logging.Info("  [OK] %s is available", tool)
		}
	}
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			// Route might not have methods specified (e.g., static file server)
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logStaticFiles bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		for _, route := range routes {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
	}

	logging.Info("  HTTP logging enabled")
	if logStaticFiles {
		logging.Info("    Static file logging: ON")
	} else {
		logging.Info("    Static file logging: OFF (set LOG_STATIC_FILES=true to enable)")
	}
}

// LogServerStarted logs successful server start
func LogServerStarted(port string, metricsEnabled bool, startupDuration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:  %v", startupDuration)
	logging.Info("")
	logging.Info("  Application:   http://localhost:%s", port)
	if metricsEnabled {
		logging.Info("  Metrics:       http://localhost:%s/metrics", port)
	} else {
		logging.Info("  Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
   _____            _ __        ______
  / ___/____  _____(_) /____   / ____/__  ____
  \__ \/ __ \/ ___/ / __/ _ \ / / __/ _ \/ __ \
 ___/ / /_/ / /  / / /_/  __// /_/ /  __/ / / /
/____/ .___/_/  /_/\__/\___/ \____/\___/_/ /_/
    /_/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Write access was confirmed regardless
	}
	return nil
}

func checkTool(name string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", name)
	}
	logging.Debug("  %s path: %s", name, path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, "-version")
	output, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("failed to get %s version: %w", name, err)
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		logging.Debug("  %s version: %s", name, strings.TrimSpace(lines[0]))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		// Accept a bare number of seconds for compatibility with older
		// deployments that set THUMBNAIL_INTERVAL=5.
		if secs, convErr := strconv.Atoi(value); convErr == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		logging.Warn("Invalid duration value for %s: %q, using default: %s", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
