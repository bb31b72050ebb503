package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Processing %s":                            "%s を処理中",
		"Decoded %s image: %dx%d":                  "%s 画像をデコードしました: %dx%d",
		"Step %d/%d: %s %dx%d to %dx%d in %d ms":   "ステップ %d/%d: %s %dx%d → %dx%d (%d ms)",
		"Output saved to %s":                       "出力を %s に保存しました",
		"Summary saved to %s":                      "サマリーを %s に保存しました",
		"Comparison saved to %s (%dx%d)":           "比較画像を %s に保存しました (%dx%d)",
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",
		"Batch completed: %d succeeded, %d failed": "バッチ完了: 成功 %d 件, 失敗 %d 件",

		// Engines
		"Scaling %dx%d to %dx%d (%s)":            "%dx%d を %dx%d に拡大縮小中 (%s)",
		"Forward scaling %dx%d to %dx%d":         "%dx%d を %dx%d に前方拡大中",
		"Rotated %dx%d by %.2f degrees to %dx%d": "%dx%d を %.2f 度回転しました: %dx%d",
		"Median filtering %dx%d":                 "%dx%d にメディアンフィルタを適用中",
		"Convolving %dx%d, kernel sum %.3f":      "%dx%d を畳み込み中, カーネル合計 %.3f",

		// Dispatcher and worker
		"Rejected job: %s":            "ジョブを拒否しました: %s",
		"Job queued (%s)":             "ジョブをキューに追加しました (%s)",
		"Job skipped: %s":             "ジョブをスキップしました: %s",
		"Job completed (%s) in %d ms": "ジョブ (%s) が %d ms で完了しました",

		// Batch and comparison
		"Processing %d files with %d workers": "%d ファイルを %d ワーカーで処理中",
		"Composed comparison sheet: %dx%d":    "比較画像を合成しました: %dx%d",

		// Errors
		"Failed to read input: %s":     "入力の読み込みに失敗しました: %s",
		"Failed to decode input: %s":   "入力のデコードに失敗しました: %s",
		"Step %d (%s) failed: %s":      "ステップ %d (%s) が失敗しました: %s",
		"Job failed (%s): %s":          "ジョブ (%s) が失敗しました: %s",
		"Failed to encode output: %s":  "出力のエンコードに失敗しました: %s",
		"Failed to write output: %s":   "出力の書き込みに失敗しました: %s",
		"Failed to write summary: %s":  "サマリーの書き込みに失敗しました: %s",
		"Failed to release worker: %s": "ワーカーの解放に失敗しました: %s",
	})
}
