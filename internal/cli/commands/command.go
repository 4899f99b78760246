package commands

import (
	"ShareIt/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage: аргументы команды неверны, диспетчер печатает её Usage.
var ErrUsage = errors.New("usage")

// Command: подкоманда shareit. Регистрируется из init() через RegisterCmd.
type Command interface {
	// Name: имя, под которым команду вызывают, например "book".
	Name() string
	Description() string
	// Usage: аргументы после имени программы, например "book <itemId> <start> <end>".
	Usage() string
	// Run получает аргументы без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out: writer для вывода CLI, в тестах подменяется буфером.
var Out io.Writer = os.Stdout

func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List возвращает команды, отсортированные по имени.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// helpSections задаёт порядок разделов в справке. Команды вне разделов попадают в "Other".
var helpSections = []struct {
	title string
	names []string
}{
	{"Account", []string{"register", "whoami", "logout"}},
	{"Items", []string{"item-add", "item-edit", "item-get", "items", "search", "comment"}},
	{"Bookings", []string{"book", "approve", "bookings"}},
	{"Requests", []string{"request-add", "requests"}},
}

// FormatGlobalUsage собирает справку по всем зарегистрированным командам.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("ShareIt CLI: вещи, бронирования и запросы\n\n")
	b.WriteString("Usage:\n  shareit [--base-url <host:port>] [--https] [--token-file <path>] <command> [args]\n")
	b.WriteString("  shareit help <command>\n")

	listed := map[string]bool{}
	for _, s := range helpSections {
		var lines []string
		for _, name := range s.names {
			if c, ok := Get(name); ok {
				lines = append(lines, usageLine(c))
				listed[name] = true
			}
		}
		writeSection(&b, s.title, lines)
	}

	var other []string
	for _, c := range List() {
		if !listed[c.Name()] {
			other = append(other, usageLine(c))
		}
	}
	writeSection(&b, "Other", other)

	b.WriteString("\nTimes: RFC3339, 2006-01-02T15:04[:05] or 2006-01-02 (UTC).\n")
	return b.String()
}

func usageLine(c Command) string {
	return fmt.Sprintf("  %-36s %s", c.Usage(), c.Description())
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
}
