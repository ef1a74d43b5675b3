package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xob0t/hobbycard/pkg/generator"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/render"
	"github.com/xob0t/hobbycard/pkg/theme"
)

var (
	renderOutput     string
	renderTheme      string
	renderSubject    string
	renderPhoto      string
	renderUser       string
	renderUserMeta   string
	renderAnchor     string
	renderDarkText   bool
	renderHideDate   bool
	renderHideBox    bool
	renderHideGame   bool
	renderMaxWidth   int
	renderShareURL   string
	renderQuality    int
	renderBackground string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a card to a PNG or JPEG file",
	Long: `Render a card for the model or battle described by a subject JSON file.

The subject's image_url may be a local path, an http(s) URL or a data URI;
--photo overrides it. The output format follows the file extension.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVarP(&renderOutput, "output", "o", "", "output file (.png, .jpg)")
	f.StringVarP(&renderTheme, "theme", "t", string(theme.Default), "theme id")
	f.StringVarP(&renderSubject, "subject", "s", "", "subject JSON file")
	f.StringVar(&renderPhoto, "photo", "", "photo path or URL (overrides image_url)")
	f.StringVar(&renderUser, "user", "", "public name shown on the identity line")
	f.StringVar(&renderUserMeta, "user-meta", "", "fallback name when --user is empty")
	f.StringVar(&renderAnchor, "anchor", "", "text corner: bottom-right, bottom-left, top-right, top-left")
	f.BoolVar(&renderDarkText, "dark-text", false, "dark text for light photos")
	f.BoolVar(&renderHideDate, "hide-date", false, "omit the painted/battle date line")
	f.BoolVar(&renderHideBox, "hide-collection", false, "omit the collection line")
	f.BoolVar(&renderHideGame, "hide-game", false, "omit the game line")
	f.IntVar(&renderMaxWidth, "max-width", 0, "downscale wider photos to this width")
	f.StringVar(&renderShareURL, "share-url", "", "link encoded by share badges")
	f.IntVar(&renderQuality, "quality", 90, "JPEG quality 1-100")
	f.StringVar(&renderBackground, "background", "#000000", "JPEG background behind transparent pixels")
	_ = renderCmd.MarkFlagRequired("output")
	_ = renderCmd.MarkFlagRequired("subject")
}

func runRender(cmd *cobra.Command, args []string) error {
	th, err := theme.Lookup(theme.ID(renderTheme))
	if err != nil {
		return err
	}
	subject, err := readSubject(renderSubject)
	if err != nil {
		return err
	}
	if renderPhoto != "" {
		subject.ImageURL = renderPhoto
	}

	opts := defaultOptions()
	if renderAnchor != "" {
		opts.Anchor = layout.ParseAnchor(renderAnchor)
	}
	opts.DarkText = renderDarkText
	opts.ShowPaintedDate = !renderHideDate
	opts.ShowCollection = !renderHideBox
	opts.ShowGameDetails = !renderHideGame
	opts.MaxWidth = renderMaxWidth
	opts.ShareURL = renderShareURL

	fetcher, err := newFetcher(nil)
	if err != nil {
		return err
	}
	r := render.New(fontRegistry(), fetcher)

	ctx := cmd.Context()
	fmt.Printf("Rendering %q with theme %s\n", subject.Name, th.Name)
	res, err := r.Render(ctx, render.Request{
		Theme:          th,
		Subject:        subject,
		UserPublicName: renderUser,
		UserMetaName:   renderUserMeta,
		Options:        opts,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := res.Settle(ctx); err != nil {
		return err
	}

	cfg := generator.Config{
		Image:      res.Image(),
		Quality:    renderQuality,
		Background: renderBackground,
	}
	if err := generator.Generate(renderOutput, cfg); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", renderOutput)
	return nil
}

func readSubject(path string) (*layout.Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subject: %w", err)
	}
	var s layout.Subject
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse subject %s: %w", path, err)
	}
	// Relative photo paths are relative to the subject file.
	if s.ImageURL != "" && !filepath.IsAbs(s.ImageURL) && !isRemote(s.ImageURL) {
		s.ImageURL = filepath.Join(filepath.Dir(path), s.ImageURL)
	}
	return &s, nil
}

func isRemote(ref string) bool {
	for _, p := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}
