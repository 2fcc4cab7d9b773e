package src

import (
	"fmt"
	"strings"
)

const WeaveSystemPrompt = "You are an expert software engineer generating complete multi-file applications. " +
	"You write full, runnable files. No snippets, diffs, or placeholders like \"...\".\n\n" +
	"**Strict Output Formatting (Non-Negotiable):**\n" +
	"Every file you emit MUST use exactly this envelope:\n\n" +
	"--FILE_START: path/to/file.ext--\n" +
	"<entire file content>\n" +
	"--FILE_END--\n\n" +
	"Rules:\n" +
	"1. The path is relative to the project root, forward slashes only.\n" +
	"2. Repeat the envelope for every file. Nothing outside the envelopes is kept.\n" +
	"3. Never nest envelopes and never emit the markers inside file content.\n"

// planPrompt asks for the project plan as strict JSON.
func planPrompt(userPrompt string) string {
	b := strings.Builder{}
	b.WriteString("Design the file plan for the application described below.\n")
	b.WriteString("Respond with STRICT JSON only: one object with keys name, description, package, permissions, dependencies, fileStructure.\n")
	b.WriteString("fileStructure is an ordered array of {\"path\",\"description\"} objects; generation follows its order.\n")
	b.WriteString("No prose, comments, trailing commas, markdown fences, or extra keys.\n")
	b.WriteString("Example: {\"name\":\"Notes\",\"description\":\"note taking app\",\"package\":\"com.example.notes\",")
	b.WriteString("\"permissions\":[],\"dependencies\":[],\"fileStructure\":[{\"path\":\"src/main.ts\",\"description\":\"entry point\"}]}.\n\n")
	b.WriteString("---\nAPPLICATION:\n")
	b.WriteString(userPrompt)
	return b.String()
}

// filePrompt asks for exactly one planned file, with the rest of the plan
// and any already-generated files as context.
func filePrompt(p *Project, fd FileDescriptor) string {
	b := strings.Builder{}
	b.WriteString("Generate the single file named below for the application. Emit it in the file envelope format.\n\n")
	b.WriteString("### APPLICATION\n")
	b.WriteString(p.Prompt + "\n\n")
	b.WriteString("### PLAN\n")
	for _, f := range p.Plan.FileStructure {
		fmt.Fprintf(&b, "- %s — %s\n", f.Path, f.Description)
	}
	if len(p.Files) > 0 {
		b.WriteString("\n### FILES ALREADY GENERATED\n")
		for _, path := range sortedStrings(fileKeys(p.Files)) {
			fmt.Fprintf(&b, "--FILE_START: %s--\n%s\n--FILE_END--\n", path, p.Files[path])
		}
	}
	b.WriteString("\n---\nGENERATE NOW: ")
	b.WriteString(fd.Path)
	if fd.Description != "" {
		b.WriteString(" (" + fd.Description + ")")
	}
	return b.String()
}

// modifyPrompt asks for the files that change under the user's request.
// Unchanged files must not be re-emitted.
func modifyPrompt(p *Project, request string) string {
	b := strings.Builder{}
	b.WriteString("Modify the application below. Re-emit every file you change, complete, in the file envelope format.\n")
	b.WriteString("Do not emit files that stay unchanged. New files are allowed.\n\n")
	b.WriteString("### CURRENT FILES\n")
	for _, path := range sortedStrings(fileKeys(p.Files)) {
		fmt.Fprintf(&b, "--FILE_START: %s--\n%s\n--FILE_END--\n", path, p.Files[path])
	}
	b.WriteString("\n---\nCHANGE REQUEST:\n")
	b.WriteString(request)
	return b.String()
}

// reviewPrompt asks for a structured review of the project, focused on the
// recently changed paths when there are any.
func reviewPrompt(p *Project, changed []string) string {
	b := strings.Builder{}
	b.WriteString("Review the application files below for defects.\n")
	b.WriteString("Respond with STRICT JSON only: {\"crashes\":[],\"experience\":[],\"other\":[]} where each entry is {\"id\",\"description\"}.\n")
	b.WriteString("crashes: likely runtime failures. experience: interface and usability problems. other: everything else.\n")
	b.WriteString("No prose, comments, trailing commas, or markdown fences.\n\n")
	if len(changed) > 0 {
		b.WriteString("Recently changed (focus here): " + strings.Join(changed, ", ") + "\n\n")
	}
	b.WriteString("### FILES\n")
	for _, path := range sortedStrings(fileKeys(p.Files)) {
		fmt.Fprintf(&b, "--FILE_START: %s--\n%s\n--FILE_END--\n", path, p.Files[path])
	}
	return b.String()
}

// inferPrompt reconstructs plan and review metadata for an imported file set
// that arrived without a manifest.
func inferPrompt(files map[string]string) string {
	b := strings.Builder{}
	b.WriteString("The files below form an existing application imported without metadata.\n")
	b.WriteString("Respond with STRICT JSON only: {\"plan\":{...},\"review\":{...}}.\n")
	b.WriteString("plan has keys name, description, package, permissions, dependencies, fileStructure ")
	b.WriteString("(ordered array of {\"path\",\"description\"}, one entry per file below).\n")
	b.WriteString("review has keys crashes, experience, other, each an array of {\"id\",\"description\"}.\n")
	b.WriteString("No prose, comments, trailing commas, or markdown fences.\n\n")
	b.WriteString("### FILES\n")
	for _, path := range sortedStrings(fileKeys(files)) {
		fmt.Fprintf(&b, "--FILE_START: %s--\n%s\n--FILE_END--\n", path, files[path])
	}
	return b.String()
}

func fileKeys(files map[string]string) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	return keys
}
