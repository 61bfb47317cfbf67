package pattern

// Run scans originalLines and applies the pattern catalog in its literal,
// non-confluent dispatch order. It returns the optimized lines and the
// audit event log, in scan order.
func Run(originalLines []string, settings Settings) (optimizedLines []string, events []Event) {
	parsed := parseAll(originalLines)
	i := 0
	for i < len(originalLines) {
		switch parsed[i].kind {
		case kindDirective, kindLabel:
			if align, ok := tryHotLoopAlign(parsed[i], settings); ok {
				events = append(events, Event{
					LineNo: i + 1, Pattern: "hot_loop_align",
					OriginalText: parsed[i].raw, OptimizedText: align,
					InputLines: 1, OutputLines: 2,
				})
				optimizedLines = append(optimizedLines, align, parsed[i].raw)
				i++
				continue
			}
			optimizedLines = append(optimizedLines, originalLines[i])
			i++
		case kindInstruction:
			consumed, out, ev, ok := dispatchInstruction(parsed, i, settings)
			if ok {
				optimizedLines = append(optimizedLines, out...)
				events = append(events, ev)
				i += consumed
				continue
			}
			optimizedLines = append(optimizedLines, originalLines[i])
			i++
		default:
			optimizedLines = append(optimizedLines, originalLines[i])
			i++
		}
	}
	return optimizedLines, events
}

// removalOutcome packages the common "emit nothing, or an indent+comment
// line" shape shared by every identity removal.
func removalOutcome(p parsedLine) (out []string, text string) {
	if c, has := commentOnlyLine(p); has {
		return []string{c}, c
	}
	return nil, Removed
}

func mkEvent(lineNo int, pattern, orig, text string, inputLines, outputLines int) Event {
	return Event{
		LineNo: lineNo, Pattern: pattern,
		OriginalText: orig, OptimizedText: text,
		InputLines: inputLines, OutputLines: outputLines,
	}
}

func dispatchInstruction(lines []parsedLine, i int, settings Settings) (consumed int, out []string, ev Event, ok bool) {
	syntax := settings.Syntax
	orig := lines[i].raw
	lineNo := i + 1

	if tryRedundantMov(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "redundant_mov", orig, text, 1, len(out)), true
	}
	if r, ok := tryMovZeroToXor(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "mov_zero_to_xor", orig, line, 1, 1), true
	}
	if tryRedundantLea(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "redundant_lea", orig, text, 1, len(out)), true
	}

	if out, ok := tryDeadStoreMove(lines, i, syntax); ok {
		return 2, out, mkEvent(lineNo, "dead_store_move", orig, out[0], 2, len(out)), true
	}
	if out, ok := tryScheduleSwapMove(lines, i, syntax); ok {
		return 2, out, mkEvent(lineNo, "schedule_swap_move", orig, out[0]+"\n"+out[1], 2, len(out)), true
	}
	if line, comments, ok := tryLoadModifyStore(lines, i, syntax); ok {
		full := append([]string{line}, comments...)
		return 3, full, mkEvent(lineNo, "load_modify_store", orig, line, 3, len(full)), true
	}
	if out, ok := tryRedundantMovePair(lines, i, syntax); ok {
		return 2, out, mkEvent(lineNo, "redundant_move_pair", orig, out[0], 2, len(out)), true
	}

	if line, ok := tryInvertConditionalJump(lines, i); ok {
		return 2, []string{line}, mkEvent(lineNo, "invert_conditional_jump", orig, line, 2, 1), true
	}

	if line, ok := tryBsfToTzcnt(lines, i, syntax, settings); ok {
		return 1, []string{line}, mkEvent(lineNo, "bsf_to_tzcnt", orig, line, 1, 1), true
	}

	if tryMulByOne(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "mul_by_one", orig, text, 1, len(out)), true
	}
	if r, _, ok := tryMulPowerOfTwoToShift(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "mul_power_of_2_to_shift", orig, line, 1, 1), true
	}

	if tryAddSubZero(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "add_sub_zero", orig, text, 1, len(out)), true
	}
	if r, ok := tryAddOneToInc(lines[i], syntax); ok {
		line := serializeIncDec(lines[i], r)
		return 1, []string{line}, mkEvent(lineNo, "add_one_to_inc", orig, line, 1, 1), true
	}
	if r, ok := trySubOneToDec(lines[i], syntax); ok {
		line := serializeIncDec(lines[i], r)
		return 1, []string{line}, mkEvent(lineNo, "sub_one_to_dec", orig, line, 1, 1), true
	}
	if r, ok := tryAddMinusOneToDec(lines[i], syntax); ok {
		line := serializeIncDec(lines[i], r)
		return 1, []string{line}, mkEvent(lineNo, "add_minus_one_to_dec", orig, line, 1, 1), true
	}
	if r, ok := trySubMinusOneToInc(lines[i], syntax); ok {
		line := serializeIncDec(lines[i], r)
		return 1, []string{line}, mkEvent(lineNo, "sub_minus_one_to_inc", orig, line, 1, 1), true
	}

	if r, ok := trySubSelfToXor(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "sub_self_to_xor", orig, line, 1, 1), true
	}

	if tryShiftByZero(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "shift_by_zero", orig, text, 1, len(out)), true
	}

	if tryOrZero(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "or_zero", orig, text, 1, len(out)), true
	}
	if r, ok := tryOrSelfToTest(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "or_self_to_test", orig, line, 1, 1), true
	}

	if tryXorZero(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "xor_zero", orig, text, 1, len(out)), true
	}

	if tryAndMinusOne(lines[i], syntax) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "and_minus_one", orig, text, 1, len(out)), true
	}
	if r, ok := tryAndZeroToXor(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "and_zero_to_xor", orig, line, 1, 1), true
	}
	if r, ok := tryAndSelfToTest(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "and_self_to_test", orig, line, 1, 1), true
	}

	if r, ok := tryCmpZeroToTest(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "cmp_zero_to_test", orig, line, 1, 1), true
	}
	if r, ok := tryCmpSelfToTest(lines[i], syntax); ok {
		line := serialize(lines[i], r.mnemonic, r.dest, r.src, syntax)
		return 1, []string{line}, mkEvent(lineNo, "cmp_self_to_test", orig, line, 1, 1), true
	}

	if tryFallthroughJump(lines, i) {
		out, text := removalOutcome(lines[i])
		return 1, out, mkEvent(lineNo, "fallthrough_jump", orig, text, 1, len(out)), true
	}

	return 0, nil, Event{}, false
}
