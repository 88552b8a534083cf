package config

import (
	"context"

	"medicine-tracker/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch recarga path en cada escritura y llama a onChange con la config nueva.
// Si la recarga falla queda activa la anterior. Corre hasta que ctx se cancele.
func Watch(ctx context.Context, path string, log logger.Logger, onChange func(*Config)) error {
	if log == nil {
		log = logger.Nop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	log.Info("config: watching for changes", logger.Fields{"path": path})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Guardado atómico de editores: llega como Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				log.Error("config: reload failed, keeping previous config", logger.Fields{"path": path, "err": err})
				continue
			}

			log.Info("config: reloaded", logger.Fields{"path": path})
			onChange(cfg)

			// El inodo pudo cambiar.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("config: watcher error", logger.Fields{"err": err})
		}
	}
}
