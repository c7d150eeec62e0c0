package target

import "github.com/tacogips/clismith/internal/canon"

// Python generates click applications.
var Python = newTarget("python", "Python", "click", ".py", SnakeCase,
	map[canon.Type]string{
		canon.String:  "str",
		canon.Integer: "int",
		canon.Float:   "float",
		canon.Boolean: "bool",
		canon.Array:   "list",
		canon.Path:    "Path",
		canon.Any:     "Any",
		canon.Object:  "dict",
		canon.Void:    "None",
	},
	[]string{
		"False", "None", "True", "and", "as", "assert", "async", "await",
		"break", "class", "continue", "def", "del", "elif", "else", "except",
		"finally", "for", "from", "global", "if", "import", "in", "is",
		"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
		"while", "with", "yield",
		// Soft keywords and builtins that generated modules must not shadow.
		"match", "case", "type", "print", "input", "id", "list", "dict", "str",
		"int", "float", "bool", "object", "help", "format",
	},
)

var javaScriptReserved = []string{
	"await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "enum", "export",
	"extends", "false", "finally", "for", "function", "if", "implements",
	"import", "in", "instanceof", "interface", "let", "new", "null",
	"package", "private", "protected", "public", "return", "static",
	"super", "switch", "this", "throw", "true", "try", "typeof", "var",
	"void", "while", "with", "yield", "arguments", "eval", "undefined",
	"NaN", "Infinity", "program", "process", "require", "module", "exports",
}

// NodeJS generates commander applications in plain JavaScript.
var NodeJS = newTarget("nodejs", "Node.js", "commander", ".js", CamelCase,
	map[canon.Type]string{
		canon.String:  "string",
		canon.Integer: "number",
		canon.Float:   "number",
		canon.Boolean: "boolean",
		canon.Array:   "Array<string>",
		canon.Path:    "string",
		canon.Any:     "*",
		canon.Object:  "Object",
		canon.Void:    "void",
	},
	javaScriptReserved,
)

// TypeScript generates commander applications in TypeScript.
var TypeScript = newTarget("typescript", "TypeScript", "commander", ".ts", CamelCase,
	map[canon.Type]string{
		canon.String:  "string",
		canon.Integer: "number",
		canon.Float:   "number",
		canon.Boolean: "boolean",
		canon.Array:   "string[]",
		canon.Path:    "string",
		canon.Any:     "unknown",
		canon.Object:  "Record<string, unknown>",
		canon.Void:    "void",
	},
	append(append([]string{}, javaScriptReserved...),
		"abstract", "any", "as", "asserts", "boolean", "constructor",
		"declare", "get", "infer", "is", "keyof", "namespace", "never",
		"number", "of", "readonly", "set", "string", "symbol", "type",
		"unique", "unknown", "object", "bigint",
	),
)

// Rust generates clap applications.
var Rust = newTarget("rust", "Rust", "clap", ".rs", SnakeCase,
	map[canon.Type]string{
		canon.String:  "String",
		canon.Integer: "i64",
		canon.Float:   "f64",
		canon.Boolean: "bool",
		canon.Array:   "Vec<String>",
		canon.Path:    "std::path::PathBuf",
		canon.Any:     "serde_json::Value",
		canon.Object:  "std::collections::HashMap<String, String>",
		canon.Void:    "()",
	},
	[]string{
		"as", "async", "await", "break", "const", "continue", "crate", "dyn",
		"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
		"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
		"self", "Self", "static", "struct", "super", "trait", "true", "type",
		"unsafe", "use", "where", "while",
		// Reserved for future use.
		"abstract", "become", "box", "do", "final", "gen", "macro", "override",
		"priv", "try", "typeof", "unsized", "virtual", "yield",
		// Would shadow the generated entry point and argument parser.
		"main", "cli", "args",
	},
)

// Go generates cobra applications.
var Go = newTarget("go", "Go", "cobra", ".go", CamelCase,
	map[canon.Type]string{
		canon.String:  "string",
		canon.Integer: "int",
		canon.Float:   "float64",
		canon.Boolean: "bool",
		canon.Array:   "[]string",
		canon.Path:    "string",
		canon.Any:     "any",
		canon.Object:  "map[string]string",
		canon.Void:    "struct{}",
	},
	[]string{
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var",
		// Predeclared identifiers generated code refers to.
		"any", "bool", "byte", "error", "false", "float64", "int", "iota",
		"nil", "rune", "string", "true", "main", "init", "cmd", "args",
	},
)
