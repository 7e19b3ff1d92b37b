// Completion: 100% - Explicit compilation stages with validation, adapted
// from the teacher's native-target stage tracker to MyLang's own pipeline
// (§2 "Pipeline stages")
package main

import (
	"fmt"
	"log"
)

// CompilationStage is one stage of the MyLang compiler pipeline, in the
// order every file must pass through (§2): lexing and parsing happen
// per-file, the remaining stages operate over the whole program.
type CompilationStage int

const (
	StageInit CompilationStage = iota
	StageLexing
	StageParsing
	StageScanning
	StageTypeChecking
	StageJumpChecking
	StageCodeGen
	StageComplete
)

func (s CompilationStage) String() string {
	switch s {
	case StageInit:
		return "Initialization"
	case StageLexing:
		return "Lexing"
	case StageParsing:
		return "Parsing"
	case StageScanning:
		return "Global Symbol Scanning"
	case StageTypeChecking:
		return "Type Checking"
	case StageJumpChecking:
		return "Jump Checking"
	case StageCodeGen:
		return "Code Generation"
	case StageComplete:
		return "Compilation Complete"
	default:
		return fmt.Sprintf("Unknown Stage %d", s)
	}
}

// CompilationPipeline tracks the current stage and validates transitions,
// panicking with the full stage history on an illegal jump — a compiler
// bug, never a user-facing condition (§2).
type CompilationPipeline struct {
	currentStage CompilationStage
	stages       []CompilationStage
	enabled      bool
}

func NewCompilationPipeline() *CompilationPipeline {
	return &CompilationPipeline{
		currentStage: StageInit,
		stages:       []CompilationStage{StageInit},
		enabled:      true,
	}
}

func (cp *CompilationPipeline) AdvanceTo(stage CompilationStage) {
	if !cp.enabled {
		cp.currentStage = stage
		return
	}

	validTransition := false
	switch cp.currentStage {
	case StageInit:
		validTransition = stage == StageLexing
	case StageLexing:
		validTransition = stage == StageParsing
	case StageParsing:
		validTransition = stage == StageScanning
	case StageScanning:
		validTransition = stage == StageTypeChecking
	case StageTypeChecking:
		validTransition = stage == StageJumpChecking
	case StageJumpChecking:
		validTransition = stage == StageCodeGen
	case StageCodeGen:
		validTransition = stage == StageComplete
	case StageComplete:
		validTransition = false
	}

	if !validTransition {
		log.Printf("[ERROR] invalid stage transition: %s -> %s", cp.currentStage, stage)
		for i, s := range cp.stages {
			log.Printf("[ERROR]   %d. %s", i+1, s)
		}
		panic(fmt.Sprintf("invalid compilation stage transition: %s -> %s", cp.currentStage, stage))
	}

	cp.currentStage = stage
	cp.stages = append(cp.stages, stage)
	log.Printf("[DEBUG] pipeline advanced to stage: %s", stage)
}

func (cp *CompilationPipeline) CurrentStage() CompilationStage {
	return cp.currentStage
}

func (cp *CompilationPipeline) ValidateStage(expected CompilationStage, operation string) {
	if !cp.enabled {
		return
	}
	if cp.currentStage != expected {
		log.Printf("[ERROR] attempted '%s' at wrong stage: expected %s, actual %s", operation, expected, cp.currentStage)
		panic(fmt.Sprintf("invalid operation '%s' at stage %s", operation, cp.currentStage))
	}
}

// Checkpoint logs a named debugging checkpoint at DEBUG level.
func (cp *CompilationPipeline) Checkpoint(name string) {
	log.Printf("[DEBUG] checkpoint: %s at stage %s", name, cp.currentStage)
}
