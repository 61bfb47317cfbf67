package pattern

// tryHotLoopAlign fires on a label line whose stripped code is exactly
// ".hot_loop:" when the hot_align option is enabled. It emits an alignment
// directive ahead of the original label line, which is retained unchanged.
func tryHotLoopAlign(p parsedLine, settings Settings) (align string, ok bool) {
	if !settings.HotAlign {
		return "", false
	}
	if p.strippedCode != ".hot_loop:" {
		return "", false
	}
	return "    .align 64", true
}
