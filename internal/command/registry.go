package command

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Handler)
	mu       sync.RWMutex

	// commandNamePattern — kebab-case: начинается с буквы, без двойных и завершающих дефисов.
	commandNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// Ошибки регистрации.
var (
	ErrNilHandler     = errors.New("command: nil handler")
	ErrEmptyName      = errors.New("command: empty handler name")
	ErrInvalidName    = errors.New("command: invalid handler name format (must be kebab-case)")
	ErrDuplicateName  = errors.New("command: duplicate handler registration")
	ErrAliasSameAsNew = errors.New("command: deprecated name cannot be same as handler name")
)

// Register регистрирует обработчик в глобальном реестре.
func Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	name := h.Name()
	if name == "" {
		return ErrEmptyName
	}
	if !commandNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	mu.Lock()
	defer mu.Unlock()
	return put(name, h)
}

// RegisterWithAlias регистрирует обработчик под его именем и, если deprecated
// не пуст, под устаревшим именем через DeprecatedBridge.
//
//	command.RegisterWithAlias(&Handler{}, constants.ActEnsureApplicationVersion)
func RegisterWithAlias(h Handler, deprecated string) error {
	if err := Register(h); err != nil {
		return err
	}
	if deprecated == "" {
		return nil
	}
	if deprecated == h.Name() {
		return fmt.Errorf("%w: %s", ErrAliasSameAsNew, deprecated)
	}

	mu.Lock()
	defer mu.Unlock()
	return put(deprecated, &DeprecatedBridge{actual: h, deprecated: deprecated, newName: h.Name()})
}

// put добавляет запись; вызывающий держит mu.
func put(name string, h Handler) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	registry[name] = h
	return nil
}

// Get возвращает обработчик по имени.
func Get(name string) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[name]
	return h, ok
}

// All возвращает копию реестра.
func All() map[string]Handler {
	mu.RLock()
	defer mu.RUnlock()
	result := make(map[string]Handler, len(registry))
	for k, v := range registry {
		result[k] = v
	}
	return result
}

// Names возвращает отсортированные имена всех команд, включая устаревшие.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info — команда и её устаревший алиас.
type Info struct {
	Name            string
	DeprecatedAlias string
}

// ListAllWithAliases возвращает основные команды с их устаревшими алиасами,
// отсортированные по имени. Сами алиасы отдельными записями не включаются.
func ListAllWithAliases() []Info {
	mu.RLock()
	defer mu.RUnlock()

	aliases := make(map[string]string)
	for _, h := range registry {
		if bridge, ok := h.(*DeprecatedBridge); ok {
			aliases[bridge.newName] = bridge.deprecated
		}
	}

	result := make([]Info, 0, len(registry)-len(aliases))
	for name, h := range registry {
		if _, isBridge := h.(*DeprecatedBridge); isBridge {
			continue
		}
		result = append(result, Info{Name: name, DeprecatedAlias: aliases[name]})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// clearRegistry очищает реестр между тестами.
func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Handler)
}
