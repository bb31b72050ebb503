// Package main provides localization for the pixelworker CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":                 "出力",
		"Transform":              "変換",
		"Reports and Comparison": "レポートと比較",
		"Debug":                  "デバッグ",
		"Logging":                "ログ",

		// Root command
		"Transform images with classic pixel-buffer algorithms":                       "古典的なピクセルバッファアルゴリズムで画像を変換",
		"pixelworker scales, rotates and filters RGBA images on a background worker.": "pixelworkerはバックグラウンドワーカーでRGBA画像の拡大縮小、回転、フィルタ処理を行います。",

		// Commands
		"Resize an image": "画像をリサイズ",
		"Resize an image to an explicit size or by a factor. With only one of --width and --height the aspect ratio is kept.": "指定サイズまたは倍率で画像をリサイズします。--width と --height の片方のみ指定した場合は縦横比を維持します。",
		"Rotate an image by any angle": "画像を任意の角度で回転",
		"Rotate an image about its center. The canvas grows to hold the rotated image; uncovered pixels are transparent.": "画像を中心で回転します。キャンバスは回転後の画像が収まるよう拡張され、余白は透明になります。",
		"Apply a 3x3 median filter":      "3x3メディアンフィルタを適用",
		"Apply a 3x3 convolution kernel": "3x3畳み込みカーネルを適用",
		"Apply a multi-step recipe":      "複数ステップのレシピを適用",
		"Apply the steps of a YAML recipe in order. Flags given on the command line override the recipe.": "YAMLレシピのステップを順に適用します。コマンドラインのフラグはレシピより優先されます。",
		"Apply a recipe to many files": "複数のファイルにレシピを適用",
		"Apply a YAML recipe to every input. Inputs may be glob patterns. Files are processed in parallel, each by its own worker.": "すべての入力にYAMLレシピを適用します。入力にはglobパターンを使えます。ファイルはそれぞれ専用のワーカーで並列処理されます。",
		"Create a side-by-side comparison sheet": "左右に並べた比較画像を作成",
		"Show version information":               "バージョン情報を表示",
		"pixelworker version %s":                 "pixelworker バージョン %s",

		// Flags
		"Output image path; the extension selects the format (required)": "出力画像のパス。拡張子で形式を選択（必須）",
		"Output image path, overrides the recipe":                        "出力画像のパス（レシピより優先）",
		"Input image path, overrides the recipe":                         "入力画像のパス（レシピより優先）",
		"Output PNG file path (required)":                                "出力PNGファイルパス（必須）",
		"JPEG output quality (1-100)":                                    "JPEG出力品質 (1-100)",
		"Ignore the EXIF orientation of the input":                       "入力のEXIF回転情報を無視",
		"Number of jobs that may wait on the worker":                     "ワーカーで待機できるジョブ数",
		"Output execution summary to file (Markdown format)":             "実行サマリーをファイルに出力（Markdown形式）",
		"Write a before/after comparison sheet (PNG)":                    "変換前後の比較画像を出力（PNG）",
		"Save every intermediate step":                                   "すべての中間ステップを保存",
		"Directory for debug output":                                     "デバッグ出力ディレクトリ",
		"Log level (debug, info, warn, error)":                           "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                                        "すべてのログ出力を抑制",
		"Scaling method (nearest, bilinear, kscale)":                     "拡大縮小方式 (nearest, bilinear, kscale)",
		"Target width in pixels":                                         "出力幅（ピクセル）",
		"Target height in pixels":                                        "出力高さ（ピクセル）",
		"Scale factor, overrides --width and --height":                   "倍率（--width と --height より優先）",
		"Rotation angle in degrees (-360 to 360)":                        "回転角度（度、-360〜360）",
		"Nine comma separated weights in row-major order":                "行優先順のカンマ区切り9個の重み",
		"Directory for the results (required)":                           "結果の出力ディレクトリ（必須）",
		"Output extension, e.g. png (default: same as input)":            "出力拡張子、例: png（デフォルト: 入力と同じ）",
		"Number of files processed in parallel":                          "並列処理するファイル数",
		"Gap between images in pixels":                                   "画像間の間隔（ピクセル）",

		// Argument errors
		"An input image argument is required":           "入力画像の引数が必要です",
		"A recipe argument is required":                 "レシピの引数が必要です",
		"A recipe and at least one input are required":  "レシピと1つ以上の入力が必要です",
		"Two image arguments are required":              "2つの画像引数が必要です",
		"Both an input and an output path are required": "入力パスと出力パスの両方が必要です",
		"Unknown scaling method: %s":                    "不明な拡大縮小方式: %s",
		"Angle must be between -360 and 360, got %v":    "角度は -360 から 360 の範囲で指定してください（指定値: %v）",
		"No input files matched":                        "一致する入力ファイルがありません",

		// Run results
		"Failed to load recipe: %s":             "レシピの読み込みに失敗しました: %s",
		"Failed to create output directory: %s": "出力ディレクトリの作成に失敗しました: %s",
		"Failed to write comparison: %s":        "比較画像の書き込みに失敗しました: %s",
		"Comparison saved to %s (%dx%d)":        "比較画像を %s に保存しました (%dx%d)",
		"%d of %d files failed: %s":             "%d / %d ファイルが失敗しました: %s",

		// Comparison captions
		"Before": "変換前",
		"After":  "変換後",

		// Summary
		"Transform Summary": "変換サマリー",
		"Generated":         "生成日時",
		"Settings":          "設定",
		"Item":              "項目",
		"Value":             "値",
		"Command":           "コマンド",
		"Quality":           "品質",
		"Auto Orientation":  "自動回転",
		"Workers":           "ワーカー数",
		"Queue Size":        "キューサイズ",
		"Succeeded":         "成功",
		"Failed":            "失敗",
		"Error":             "エラー",
		"Input":             "入力",
		"Output Size":       "出力サイズ",
		"Total Time":        "合計時間",
		"Operation":         "操作",
		"Time":              "時間",
		"Yes":               "はい",
		"No":                "いいえ",
	})
}
