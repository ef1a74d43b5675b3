//go:build js && wasm

// hobbycard WASM — client-side card renderer.
// Compiled with: GOOS=js GOARCH=wasm go build -o hobbycard.wasm ./clients/wasm/
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"syscall/js"
	"time"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/generator"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/render"
	"github.com/xob0t/hobbycard/pkg/theme"
)

var (
	store    = assets.NewStore()
	renderer *render.Renderer
)

func main() {
	fetcher, err := assets.NewFetcher(store, 15*time.Second, 32)
	if err != nil {
		fmt.Println("hobbycard WASM:", err)
		return
	}
	renderer = render.New(nil, fetcher)
	fmt.Println("hobbycard WASM loaded")

	// Register JS-callable functions.
	js.Global().Set("goRenderCard", js.FuncOf(renderCard))
	js.Global().Set("goListThemes", js.FuncOf(listThemes))
	js.Global().Set("goRegisterAsset", js.FuncOf(registerAsset))
	js.Global().Set("goRemoveAsset", js.FuncOf(removeAsset))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// goRegisterAsset(name, base64Data, mime) — store an asset in Go memory and
// return the URL a subject can reference it by.
func registerAsset(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf("error: need name, base64Data, mime")
	}
	data, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return js.ValueOf("error: invalid base64: " + err.Error())
	}
	id := store.Add(args[0].String(), data, args[2].String())
	return js.ValueOf(assets.URL(id))
}

// goRemoveAsset(id) — remove an asset from Go memory.
func removeAsset(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: need id")
	}
	store.Remove(args[0].String())
	return js.ValueOf("ok")
}

// goListThemes() — JSON array of theme descriptions.
func listThemes(this js.Value, args []js.Value) interface{} {
	var out []theme.Info
	for _, t := range theme.All() {
		out = append(out, t.Info())
	}
	b, err := json.Marshal(out)
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(string(b))
}

// goRenderCard(themeID, subjectJSON, optionsJSON) — returns a Promise that
// resolves to a base64 PNG. Rendering may fetch images, which must not block
// the JS event loop.
func renderCard(this js.Value, args []js.Value) interface{} {
	handler := js.FuncOf(func(this js.Value, p []js.Value) interface{} {
		resolve, reject := p[0], p[1]
		go func() {
			out, err := render64(args)
			if err != nil {
				reject.Invoke(js.Global().Get("Error").New(err.Error()))
				return
			}
			resolve.Invoke(out)
		}()
		return nil
	})
	defer handler.Release()
	return js.Global().Get("Promise").New(handler)
}

func render64(args []js.Value) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("need themeID, subjectJSON")
	}
	t, err := theme.Lookup(theme.ID(args[0].String()))
	if err != nil {
		return "", err
	}
	var subject layout.Subject
	if err := json.Unmarshal([]byte(args[1].String()), &subject); err != nil {
		return "", fmt.Errorf("parse subject: %w", err)
	}
	opts := render.DefaultOptions()
	if len(args) > 2 && args[2].Type() == js.TypeString && args[2].String() != "" {
		if err := json.Unmarshal([]byte(args[2].String()), &opts); err != nil {
			return "", fmt.Errorf("parse options: %w", err)
		}
		opts.Anchor = layout.ParseAnchor(string(opts.Anchor))
	}

	ctx := context.Background()
	res, err := renderer.Render(ctx, render.Request{Theme: t, Subject: &subject, Options: opts})
	if err != nil {
		return "", err
	}
	if _, err := res.Settle(ctx); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := generator.GenerateToWriter(&buf, ".png", generator.Config{Image: res.Image()}); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
