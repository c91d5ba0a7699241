//go:build linux

package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const watchMask = unix.IN_MODIFY | unix.IN_CLOSE_WRITE | unix.IN_MOVE_SELF | unix.IN_DELETE_SELF

// FileWatcher calls onChange after a watched file was written. Bursts of
// events for the same file are collapsed into one call.
type FileWatcher struct {
	fd          int
	watchMap    map[int]string
	mu          sync.Mutex
	debounceMap map[string]*time.Timer
	onChange    func(string)
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %w", err)
	}

	return &FileWatcher{
		fd:          fd,
		watchMap:    make(map[int]string),
		debounceMap: make(map[string]*time.Timer),
		onChange:    onChange,
	}, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	wd, err := unix.InotifyAddWatch(fw.fd, absPath, watchMask)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	fw.mu.Lock()
	fw.watchMap[wd] = absPath
	fw.mu.Unlock()

	return nil
}

// Watch processes events until ctx is done.
func (fw *FileWatcher) Watch(ctx context.Context) {
	buf := make([]byte, 4096)

	for ctx.Err() == nil {
		n, err := unix.Read(fw.fd, buf)
		if err != nil {
			if err != unix.EAGAIN && err != unix.EINTR {
				log.Printf("watch: reading inotify events: %v", err)
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}

		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)

			fw.mu.Lock()
			path := fw.watchMap[int(event.Wd)]
			fw.mu.Unlock()
			if path == "" {
				continue
			}

			// Editors that save by renaming replace the inode: watch the new one.
			if event.Mask&(unix.IN_MOVE_SELF|unix.IN_DELETE_SELF) != 0 {
				fw.rewatch(int(event.Wd), path)
			}
			fw.debouncedCallback(path)
		}
	}
}

func (fw *FileWatcher) rewatch(wd int, path string) {
	fw.mu.Lock()
	delete(fw.watchMap, wd)
	fw.mu.Unlock()
	_, _ = unix.InotifyRmWatch(fw.fd, uint32(wd))

	for i := 0; i < 20; i++ {
		if err := fw.AddFile(path); err == nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	log.Printf("watch: lost %s", path)
}

func (fw *FileWatcher) debouncedCallback(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if timer, exists := fw.debounceMap[path]; exists {
		timer.Stop()
	}

	fw.debounceMap[path] = time.AfterFunc(200*time.Millisecond, func() {
		fw.onChange(path)
		fw.mu.Lock()
		delete(fw.debounceMap, path)
		fw.mu.Unlock()
	})
}

func (fw *FileWatcher) Close() error {
	return unix.Close(fw.fd)
}

// watchFile re-runs onChange whenever path changes, until ctx is done.
func watchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := NewFileWatcher(func(string) { onChange() })
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.AddFile(path); err != nil {
		return fmt.Errorf("failed to watch file: %w", err)
	}
	log.Printf("watching %s for changes (Ctrl+C to stop)", path)
	watcher.Watch(ctx)
	return nil
}
