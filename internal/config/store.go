// Package config хранит профили приложений и общие настройки с сохранением в файлы.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store владеет всеми сохраняемыми сущностями: общими настройками и профилями.
//
// Раскладка на диске:
//
//	<base>/config/general.json
//	<base>/config/apps/<идентификатор>.json
//	<base>/icons/
type Store struct {
	mu       sync.RWMutex
	baseDir  string
	version  string
	general  GeneralSettings
	profiles map[string]ApplicationProfile
}

// DefaultDir возвращает каталог данных приложения.
// Переменная PIEMENU_HOME переопределяет путь.
func DefaultDir() (string, error) {
	if dir := os.Getenv("PIEMENU_HOME"); dir != "" {
		return dir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("не удалось определить каталог конфигурации: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "PieMenu"), nil
}

// Open создаёт каталоги и загружает конфигурацию.
func Open(baseDir, version string) (*Store, error) {
	s := &Store{
		baseDir:  baseDir,
		version:  version,
		general:  DefaultGeneral(version),
		profiles: make(map[string]ApplicationProfile),
	}
	for _, dir := range []string{s.appsDir(), s.IconsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог %s: %w", dir, err)
		}
	}
	s.Load()
	return s, nil
}

func (s *Store) configDir() string   { return filepath.Join(s.baseDir, "config") }
func (s *Store) appsDir() string     { return filepath.Join(s.configDir(), "apps") }
func (s *Store) generalPath() string { return filepath.Join(s.configDir(), "general.json") }

// BaseDir возвращает корневой каталог данных.
func (s *Store) BaseDir() string { return s.baseDir }

// IconsDir возвращает каталог пользовательских иконок.
func (s *Store) IconsDir() string { return filepath.Join(s.baseDir, "icons") }

// Load перечитывает настройки и профили с диска.
// Ошибка чтения общих настроек даёт значения по умолчанию, битые профили пропускаются.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.general = s.loadGeneral()
	s.profiles = s.loadProfiles()

	// Профиль по умолчанию должен быть всегда
	if _, ok := s.profiles[DefaultAppID]; !ok {
		def := DefaultProfile()
		s.profiles[def.ID] = def
		if err := s.saveProfileLocked(def); err != nil {
			log.Printf("Ошибка сохранения профиля по умолчанию: %v", err)
		}
	}
}

func (s *Store) loadGeneral() GeneralSettings {
	data, err := os.ReadFile(s.generalPath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Не удалось прочитать общие настройки, используются значения по умолчанию: %v", err)
		}
		return DefaultGeneral(s.version)
	}

	g, err := decodeGeneral(data)
	if err != nil {
		log.Printf("Не удалось разобрать общие настройки, используются значения по умолчанию: %v", err)
		return DefaultGeneral(s.version)
	}
	if s.version != "" {
		g.Version = s.version
	}
	return g
}

func decodeGeneral(data []byte) (GeneralSettings, error) {
	if err := ValidateGeneralJSON(data); err != nil {
		return GeneralSettings{}, err
	}
	var g GeneralSettings
	if err := json.Unmarshal(data, &g); err != nil {
		return GeneralSettings{}, err
	}
	if !g.Hotkey.Key.Valid() {
		return GeneralSettings{}, fmt.Errorf("%w: неизвестная клавиша %q", ErrInvalid, g.Hotkey.Key)
	}
	return g, nil
}

func (s *Store) loadProfiles() map[string]ApplicationProfile {
	profiles := make(map[string]ApplicationProfile)

	entries, err := os.ReadDir(s.appsDir())
	if err != nil {
		log.Printf("Не удалось прочитать каталог профилей: %v", err)
		return profiles
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		path := filepath.Join(s.appsDir(), name)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Профиль %s пропущен: %v", name, err)
			continue
		}
		p, err := DecodeProfile(data)
		if err != nil {
			log.Printf("Профиль %s пропущен: %v", name, err)
			continue
		}
		if _, dup := profiles[p.ID]; dup {
			log.Printf("Профиль %s пропущен: повтор идентификатора %s", name, p.ID)
			continue
		}
		profiles[p.ID] = p
	}
	return profiles
}

// DecodeProfile проверяет запись профиля по схеме и инвариантам.
func DecodeProfile(data []byte) (ApplicationProfile, error) {
	if err := ValidateProfileJSON(data); err != nil {
		return ApplicationProfile{}, err
	}
	var p ApplicationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return ApplicationProfile{}, err
	}
	if p.Slots == nil {
		p.Slots = make(map[int]string)
	}
	if err := p.Validate(); err != nil {
		return ApplicationProfile{}, err
	}
	return p, nil
}

// Save записывает общие настройки и все профили.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.saveGeneralLocked(); err != nil {
		return err
	}
	for _, id := range s.sortedIDsLocked() {
		if err := s.saveProfileLocked(s.profiles[id]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) saveGeneralLocked() error {
	data, err := encodeSorted(s.general)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать общие настройки: %w", err)
	}
	return writeFileAtomic(s.generalPath(), data)
}

func (s *Store) saveProfileLocked(p ApplicationProfile) error {
	if p.Slots == nil {
		p.Slots = make(map[int]string)
	}
	if p.Commands == nil {
		p.Commands = []Command{}
	}
	data, err := encodeSorted(p)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать профиль %s: %w", p.ID, err)
	}
	return writeFileAtomic(s.profilePath(p.ID), data)
}

func (s *Store) profilePath(id string) string {
	return filepath.Join(s.appsDir(), ProfileFileName(id))
}

// ProfileFileName возвращает имя файла профиля для идентификатора приложения.
func ProfileFileName(id string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	name := strings.TrimLeft(r.Replace(id), ".")
	if name == "" {
		name = "_"
	}
	return name + ".json"
}

// encodeSorted кодирует значение в JSON с отступами и отсортированными ключами на всех уровнях.
func encodeSorted(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// writeFileAtomic пишет во временный файл рядом с целью и переименовывает его.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// General возвращает копию общих настроек.
func (s *Store) General() GeneralSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := s.general
	g.Hotkey.Modifiers = append([]Modifier(nil), g.Hotkey.Modifiers...)
	return g
}

// Hotkey возвращает текущую горячую клавишу.
func (s *Store) Hotkey() HotkeyConfig {
	return s.General().Hotkey
}

// SetHotkey устанавливает горячую клавишу и сразу сохраняет настройки.
func (s *Store) SetHotkey(hk HotkeyConfig) error {
	if !hk.Key.Valid() {
		return fmt.Errorf("%w: неизвестная клавиша %q", ErrInvalid, hk.Key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.general.Hotkey = hk
	return s.saveGeneralLocked()
}

// SetLaunchAtLogin включает/выключает автозапуск и сразу сохраняет настройки.
func (s *Store) SetLaunchAtLogin(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.general.LaunchAtLogin = enabled
	return s.saveGeneralLocked()
}

// Profiles возвращает копии всех профилей, отсортированные по имени.
func (s *Store) Profiles() []ApplicationProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ApplicationProfile, 0, len(s.profiles))
	for _, id := range s.sortedIDsLocked() {
		out = append(out, s.profiles[id].Clone())
	}
	return out
}

func (s *Store) sortedIDsLocked() []string {
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.profiles[ids[i]], s.profiles[ids[j]]
		if !strings.EqualFold(a.Name, b.Name) {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return a.ID < b.ID
	})
	return ids
}

// Profile возвращает копию профиля по идентификатору приложения.
func (s *Store) Profile(id string) (ApplicationProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return ApplicationProfile{}, false
	}
	return p.Clone(), true
}

// PutProfile заменяет профиль целиком после проверки инвариантов.
func (s *Store) PutProfile(p ApplicationProfile) error {
	p = p.Clone()
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
	return s.saveProfileLocked(p)
}

// AddApplication создаёт пустой профиль для приложения.
func (s *Store) AddApplication(id, name string) (ApplicationProfile, error) {
	p := ApplicationProfile{ID: id, Name: name, Commands: []Command{}, Slots: map[int]string{}}
	if err := p.Validate(); err != nil {
		return ApplicationProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; ok {
		return ApplicationProfile{}, fmt.Errorf("профиль %s: %w", id, ErrDuplicate)
	}
	s.profiles[id] = p
	if err := s.saveProfileLocked(p); err != nil {
		return ApplicationProfile{}, err
	}
	return p.Clone(), nil
}

// RemoveProfile удаляет профиль и его файл.
func (s *Store) RemoveProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return fmt.Errorf("профиль %s: %w", id, ErrNotFound)
	}
	delete(s.profiles, id)
	if err := os.Remove(s.profilePath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// mutate применяет изменение к копии профиля, проверяет и сохраняет её.
func (s *Store) mutate(appID string, fn func(p *ApplicationProfile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[appID]
	if !ok {
		return fmt.Errorf("профиль %s: %w", appID, ErrNotFound)
	}
	p := current.Clone()
	if err := fn(&p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.profiles[appID] = p
	return s.saveProfileLocked(p)
}

// AddCommand добавляет команду в профиль. Пустой ID генерируется.
func (s *Store) AddCommand(appID string, cmd Command) (Command, error) {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	if err := cmd.Definition.Validate(); err != nil {
		return Command{}, err
	}
	err := s.mutate(appID, func(p *ApplicationProfile) error {
		if _, exists := p.Command(cmd.ID); exists {
			return fmt.Errorf("команда %s: %w", cmd.ID, ErrDuplicate)
		}
		p.Commands = append(p.Commands, cmd)
		return nil
	})
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// UpdateCommand меняет подпись и иконку команды, сохраняя её идентификатор.
func (s *Store) UpdateCommand(appID, cmdID, label string, icon *Icon) error {
	return s.mutate(appID, func(p *ApplicationProfile) error {
		for i := range p.Commands {
			if p.Commands[i].ID == cmdID {
				p.Commands[i].Label = label
				p.Commands[i].Icon = icon
				return nil
			}
		}
		return fmt.Errorf("команда %s: %w", cmdID, ErrNotFound)
	})
}

// DeleteCommand удаляет команду и все ссылки на неё из секторов.
func (s *Store) DeleteCommand(appID, cmdID string) error {
	return s.mutate(appID, func(p *ApplicationProfile) error {
		idx := -1
		for i, c := range p.Commands {
			if c.ID == cmdID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("команда %s: %w", cmdID, ErrNotFound)
		}
		p.Commands = append(p.Commands[:idx], p.Commands[idx+1:]...)
		for slot, id := range p.Slots {
			if id == cmdID {
				delete(p.Slots, slot)
			}
		}
		return nil
	})
}

// AssignSlot назначает команду на сектор.
func (s *Store) AssignSlot(appID string, slot int, cmdID string) error {
	return s.mutate(appID, func(p *ApplicationProfile) error {
		if slot < 0 || slot >= p.Slices() {
			return fmt.Errorf("%w: сектор %d вне [0, %d)", ErrInvalid, slot, p.Slices())
		}
		if _, ok := p.Command(cmdID); !ok {
			return fmt.Errorf("команда %s: %w", cmdID, ErrNotFound)
		}
		p.Slots[slot] = cmdID
		return nil
	})
}

// ClearSlot освобождает сектор.
func (s *Store) ClearSlot(appID string, slot int) error {
	return s.mutate(appID, func(p *ApplicationProfile) error {
		delete(p.Slots, slot)
		return nil
	})
}

// Image возвращает содержимое пользовательской иконки.
// Для символьных иконок и отсутствующих файлов возвращает false.
func (s *Store) Image(icon *Icon) ([]byte, bool) {
	if icon == nil || icon.Kind != IconCustom || icon.Filename == "" {
		return nil, false
	}
	// Имя файла не должно выходить за пределы каталога иконок
	if filepath.Base(icon.Filename) != icon.Filename {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(s.IconsDir(), icon.Filename))
	if err != nil {
		return nil, false
	}
	return data, true
}

// SaveCustomIcon копирует изображение в каталог иконок под уникальным именем.
func (s *Store) SaveCustomIcon(sourcePath string) (string, error) {
	ext := filepath.Ext(sourcePath)
	if ext == "" {
		ext = ".png"
	}
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	base = strings.ReplaceAll(base, " ", "-")
	name := fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("не удалось открыть иконку: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("не удалось прочитать иконку: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.IconsDir(), name), data); err != nil {
		return "", fmt.Errorf("не удалось сохранить иконку: %w", err)
	}
	return name, nil
}
