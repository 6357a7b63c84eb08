//go:build js && wasm

/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Command timeline-wasm runs the timeline game in the browser. It is built
// with GOOS=js GOARCH=wasm and served by the timeline server as
// assets/timeline/timeline.wasm.
package main

import (
	"errors"
	"log"
	"syscall/js"

	"github.com/Seednode/timeline/games/timeline"
	"github.com/Seednode/timeline/games/timeline/render"
)

func main() {
	log.SetFlags(0)

	root := js.Global().Get("document").Call("getElementById", "root")
	if root.IsNull() {
		log.Println("timeline: missing #root element")
		return
	}

	seed, err := timeline.NewSeed()
	if err != nil {
		log.Printf("timeline: %v", err)
		return
	}

	draw := func(s timeline.State) {
		html, err := render.RenderBoard(s)
		if err != nil {
			log.Printf("timeline: render: %v", err)
			return
		}
		root.Set("innerHTML", html)
	}

	sess := timeline.NewSession(timeline.NewRand(seed), timeline.ClockScheduler{}, draw)
	draw(sess.State())

	onClick := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}

		target := args[0].Get("target").Call("closest", "[data-action]")
		if target.IsNull() {
			return nil
		}

		a, err := timeline.ParseAction(dataset(target, "action"), dataset(target, "position"))
		if err != nil {
			log.Printf("timeline: %v", err)
			return nil
		}

		go func() {
			_, err := sess.Dispatch(a)
			switch {
			case err == nil, errors.Is(err, timeline.ErrNoPosition), errors.Is(err, timeline.ErrNotActive):
			default:
				log.Printf("timeline: %s: %v", a.Kind, err)
			}
		}()

		return nil
	})
	root.Call("addEventListener", "click", onClick)

	onHide := js.FuncOf(func(_ js.Value, args []js.Value) any {
		persisted := len(args) > 0 && args[0].Get("persisted").Truthy()
		sess.Hide(!persisted)
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", onHide)

	select {}
}

func dataset(el js.Value, key string) string {
	v := el.Get("dataset").Get(key)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}
