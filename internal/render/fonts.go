package render

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gogpu/gg/text"
	"go.uber.org/zap"

	"atelier-schedule-bot/internal/models/config"
)

// Download fallbacks (Google Fonts raw files).
const (
	zenRegularURL     = "https://raw.githubusercontent.com/google/fonts/main/ofl/zenkakugothicnew/ZenKakuGothicNew-Regular.ttf"
	zenBoldURL        = "https://raw.githubusercontent.com/google/fonts/main/ofl/zenkakugothicnew/ZenKakuGothicNew-Bold.ttf"
	courierRegularURL = "https://raw.githubusercontent.com/google/fonts/main/ofl/courierprime/CourierPrime-Regular.ttf"
	courierBoldURL    = "https://raw.githubusercontent.com/google/fonts/main/ofl/courierprime/CourierPrime-Bold.ttf"
)

const fontDownloadTimeout = 30 * time.Second

// fontRole identifies one of the four font assets.
type fontRole int

const (
	roleJPRegular fontRole = iota
	roleJPBold
	roleNumRegular
	roleNumBold
)

var roleFilenames = map[fontRole]string{
	roleJPRegular:  "ZenKakuGothicNew-Regular.ttf",
	roleJPBold:     "ZenKakuGothicNew-Bold.ttf",
	roleNumRegular: "CourierPrime-Regular.ttf",
	roleNumBold:    "CourierPrime-Bold.ttf",
}

var roleLabels = map[fontRole]string{
	roleJPRegular:  "Zen Kaku Gothic New Regular",
	roleJPBold:     "Zen Kaku Gothic New Bold",
	roleNumRegular: "Courier Prime Regular",
	roleNumBold:    "Courier Prime Bold",
}

var roleSystemDirs = map[fontRole][]string{
	roleJPRegular:  {"/usr/share/fonts/truetype/zen-kaku-gothic-new", "/usr/share/fonts/truetype/zenkakugothicnew"},
	roleJPBold:     {"/usr/share/fonts/truetype/zen-kaku-gothic-new", "/usr/share/fonts/truetype/zenkakugothicnew"},
	roleNumRegular: {"/usr/share/fonts/truetype/courier-prime", "/usr/share/fonts/truetype/courierprime"},
	roleNumBold:    {"/usr/share/fonts/truetype/courier-prime", "/usr/share/fonts/truetype/courierprime"},
}

var roleURLs = map[fontRole]string{
	roleJPRegular:  zenRegularURL,
	roleJPBold:     zenBoldURL,
	roleNumRegular: courierRegularURL,
	roleNumBold:    courierBoldURL,
}

// FontLibrary resolves and holds the four font sources and caches the face
// sets derived from them. It is constructed once at startup and is safe to
// share between renders; faces are read-only after creation.
type FontLibrary struct {
	sources map[fontRole]*text.FontSource

	mu   sync.Mutex
	sets map[fontSetKey]FontSet
}

type fontSetKey struct {
	size int // tenths of a point, to keep the key integral
	bold bool
}

// NewFontLibrary resolves all four font assets. Resolution failure is a
// startup error; rendering never resolves fonts per call.
func NewFontLibrary(cfg config.RenderConfig, log *zap.Logger) (*FontLibrary, error) {
	cacheDir := cfg.FontCacheDir
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve font cache dir: %w", err)
		}
		cacheDir = filepath.Join(home, ".cache", "atelier-schedule-fonts")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create font cache dir: %w", err)
	}

	baseFiles := resolveBaseOverride(cfg.FontPath)
	explicit := map[fontRole]string{
		roleJPRegular:  cfg.FontJPRegularPath,
		roleJPBold:     cfg.FontJPBoldPath,
		roleNumRegular: cfg.FontNumRegularPath,
		roleNumBold:    cfg.FontNumBoldPath,
	}

	lib := &FontLibrary{
		sources: make(map[fontRole]*text.FontSource, 4),
		sets:    make(map[fontSetKey]FontSet),
	}
	for _, role := range []fontRole{roleJPRegular, roleJPBold, roleNumRegular, roleNumBold} {
		source, path, err := resolveFont(role, explicit[role], baseFiles[role], cacheDir, log)
		if err != nil {
			return nil, err
		}
		log.Debug("resolved font", zap.String("label", roleLabels[role]), zap.String("path", path))
		lib.sources[role] = source
	}
	return lib, nil
}

// FontSet returns the cached face pair for a size/weight combination.
func (l *FontLibrary) FontSet(size float64, bold bool) FontSet {
	key := fontSetKey{size: int(size * 10), bold: bold}

	l.mu.Lock()
	defer l.mu.Unlock()
	if set, ok := l.sets[key]; ok {
		return set
	}

	jp, num := l.sources[roleJPRegular], l.sources[roleNumRegular]
	if bold {
		jp, num = l.sources[roleJPBold], l.sources[roleNumBold]
	}
	set := newFontSet(jp, num, size)
	l.sets[key] = set
	return set
}

// resolveBaseOverride expands a single file or directory override into
// per-role candidate paths.
func resolveBaseOverride(base string) map[fontRole]string {
	out := make(map[fontRole]string)
	if base == "" {
		return out
	}
	info, err := os.Stat(base)
	if err != nil {
		return out
	}
	if info.IsDir() {
		for role, name := range roleFilenames {
			out[role] = filepath.Join(base, name)
		}
		return out
	}
	for role := range roleFilenames {
		out[role] = base
	}
	return out
}

// resolveFont walks the candidate chain for one role. The first path whose
// font data parses wins; when nothing validates, one download into the
// cache directory is attempted before giving up.
func resolveFont(role fontRole, explicit, baseFile, cacheDir string, log *zap.Logger) (*text.FontSource, string, error) {
	name := roleFilenames[role]
	home, _ := os.UserHomeDir()
	candidates := []string{explicit, baseFile, filepath.Join(cacheDir, name)}
	for _, dir := range roleSystemDirs[role] {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	candidates = append(candidates,
		filepath.Join("/usr/local/share/fonts", name),
		filepath.Join(home, ".local/share/fonts", name),
		filepath.Join(home, "Library/Fonts", name),
	)

	var checked []string
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		checked = append(checked, candidate)
		if source := loadFontSource(candidate); source != nil {
			return source, candidate, nil
		}
	}

	target := filepath.Join(cacheDir, name)
	if err := downloadFont(roleURLs[role], target); err != nil {
		log.Warn("font download failed", zap.String("label", roleLabels[role]), zap.Error(err))
	}
	if source := loadFontSource(target); source != nil {
		return source, target, nil
	}

	return nil, "", fmt.Errorf("%s not found, checked: %s", roleLabels[role], strings.Join(checked, ", "))
}

// loadFontSource validates a candidate by actually parsing it.
func loadFontSource(path string) *text.FontSource {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	source, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil
	}
	return source
}

func downloadFont(url, target string) error {
	client := &http.Client{Timeout: fontDownloadTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty response from %s", url)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
