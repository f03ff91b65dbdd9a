package catalog

import (
	"context"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"sync"

	"git.thinkinpower.net/ccform/data"
	"git.thinkinpower.net/ccform/file"
	"git.thinkinpower.net/ccform/form"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Catalog serves the message texts of the card form. It starts with the
// defaults and is overridden by messages.yaml files found in the data
// directory.
type Catalog struct {
	mu       sync.RWMutex
	messages form.Messages
}

func New() *Catalog {
	return &Catalog{messages: form.DefaultMessages()}
}

// Messages implements form.MessageSource.
func (c *Catalog) Messages() form.Messages {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messages
}

func isMessagesFile(path string) bool {
	return filepath.Base(path) == data.MessagesFileName
}

// Load rebuilds the catalogue from every messages file under dir. Files are
// applied by depth, then by path, so nested files override outer ones. On error the
// current messages are kept.
func (c *Catalog) Load(dir string) error {
	var (
		paths []string
		err   error
	)
	if paths, err = file.SearchDir(dir, isMessagesFile); err != nil {
		return err
	}
	sortByDepth(paths)

	messages := form.DefaultMessages()
	for _, path := range paths {
		if messages, err = apply(messages, path); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.messages = messages
	c.mu.Unlock()
	logger.Infof("message catalogue loaded, files: %d, dir: %s", len(paths), dir)
	return nil
}

func sortByDepth(paths []string) {
	sep := string(filepath.Separator)
	sort.Slice(paths, func(i, j int) bool {
		di, dj := strings.Count(paths[i], sep), strings.Count(paths[j], sep)
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
}

func apply(messages form.Messages, path string) (form.Messages, error) {
	var (
		content []byte
		texts   map[string]string
		err     error
	)
	if content, err = os.ReadFile(path); err != nil {
		return messages, errors.Wrapf(err, "read messages file %s", path)
	}
	if err = yaml.Unmarshal(content, &texts); err != nil {
		return messages, errors.Wrapf(err, "parse messages file %s", path)
	}
	for key, text := range texts {
		if !form.IsMessageKey(key) {
			logger.Warnf("ignore unknown message key %s in %s", key, path)
			continue
		}
		messages = messages.With(form.MessageKey(key), text)
	}
	return messages, nil
}

// Watch reloads the catalogue whenever a messages file under dir is written
// or created. It blocks until ctx is done.
func (c *Catalog) Watch(ctx context.Context, dir string) error {
	var (
		watcher *fsnotify.Watcher
		err     error
	)
	if watcher, err = fsnotify.NewWatcher(); err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Error(err)
		}
	}()

	if err = addWatchDirs(watcher, dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			c.handle(watcher, dir, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch %s error: %s", dir, err)
		}
	}
}

func (c *Catalog) handle(watcher *fsnotify.Watcher, dir string, event fsnotify.Event) {
	defer func() {
		if err := recover(); err != nil {
			logger.Errorf("reload message catalogue panic: %v, stack: %s", err, string(debug.Stack()))
		}
	}()

	e := file.FileEvent{Filepath: event.Name, FileCreated: event.Op&fsnotify.Create == fsnotify.Create}
	if e.FileCreated {
		if info, err := os.Stat(e.Filepath); err == nil && info.IsDir() {
			if err = addWatchDirs(watcher, e.Filepath); err != nil {
				logger.Error(err)
				return
			}
			if err = c.Load(dir); err != nil {
				logger.Errorf("reload message catalogue failed, keep previous messages, error: %s", err)
			}
			return
		}
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !isMessagesFile(e.Filepath) {
		return
	}
	logger.Infof("messages file changed: %s, created: %t", e.Filepath, e.FileCreated)
	if err := c.Load(dir); err != nil {
		logger.Errorf("reload message catalogue failed, keep previous messages, error: %s", err)
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err = watcher.Add(path); err != nil {
			return errors.Wrapf(err, "watch dir %s", path)
		}
		return nil
	})
}
