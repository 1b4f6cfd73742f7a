package cli

import (
	"fmt"
	"io"
	"strings"
)

// GenerateCompletion writes a completion script for shell ("bash", "zsh",
// "fish" or "powershell") offering operations as values of -op.
func GenerateCompletion(out io.Writer, shell string, operations []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, operations)
	case "zsh":
		return generateZshCompletion(out, operations)
	case "fish":
		return generateFishCompletion(out, operations)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, operations)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func generateBashCompletion(out io.Writer, operations []string) error {
	script := `# Bash completion script for bncalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bncalc_completions() {
    local cur prev opts operations
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="--help -h --version -V -op -a -b -bits -word -format -input -timeout -strict -verify -max-exponent -d -details -json -server -port -interactive -batch -calibrate -calibration-profile -profile -no-color -o -output -q -quiet -completion -log-level"
    operations="%s"

    case "${prev}" in
        -op)
            COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )
            return 0
            ;;
        -word)
            COMPREPLY=( $(compgen -W "8 16 32" -- "${cur}") )
            return 0
            ;;
        -bits)
            COMPREPLY=( $(compgen -W "64 128 256 512 1024 2048 4096" -- "${cur}") )
            return 0
            ;;
        -format)
            COMPREPLY=( $(compgen -W "hex dec both" -- "${cur}") )
            return 0
            ;;
        -input)
            COMPREPLY=( $(compgen -W "hex dec" -- "${cur}") )
            return 0
            ;;
        -log-level)
            COMPREPLY=( $(compgen -W "debug info warn error" -- "${cur}") )
            return 0
            ;;
        -completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
        -output|-o|-batch|-profile|-calibration-profile)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        -timeout)
            COMPREPLY=( $(compgen -W "1s 10s 30s 1m 5m" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bncalc_completions bncalc
`
	_, err := fmt.Fprintf(out, script, strings.Join(operations, " "))
	return err
}

func generateZshCompletion(out io.Writer, operations []string) error {
	script := `#compdef bncalc

# Zsh completion script for bncalc
# Add this to your ~/.zshrc or place in $fpath

_bncalc() {
    local -a operations
    operations=(%s)

    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '-op[Operation to evaluate]:operation:($operations)' \
        '-a[First operand]:value:' \
        '-b[Second operand]:value:' \
        '-bits[Capacity in bits]:bits:(64 128 256 512 1024 2048 4096)' \
        '-word[Word width in bits]:width:(8 16 32)' \
        '-format[Result format]:format:(hex dec both)' \
        '-input[Default operand base]:base:(hex dec)' \
        '-timeout[Maximum execution time]:duration:(1s 10s 30s 1m 5m)' \
        '-strict[Fail when a result overflows]' \
        '-verify[Check results against the reference oracle]' \
        '-max-exponent[Largest exponent accepted by pow]:exponent:' \
        '(-d -details)'{-d,-details}'[Show layout and timings]' \
        '-json[Output in JSON format]' \
        '-server[Start HTTP server mode]' \
        '-port[Server port]:port:(8080 3000 5000 9000)' \
        '-interactive[Start interactive REPL mode]' \
        '-batch[Evaluate a batch file]:file:_files' \
        '-calibrate[Benchmark word widths]' \
        '-calibration-profile[Calibration profile file]:file:_files' \
        '-profile[TOML configuration profile]:file:_files' \
        '-no-color[Disable colored output]' \
        '(-o -output)'{-o,-output}'[Output file path]:file:_files' \
        '(-q -quiet)'{-q,-quiet}'[Quiet mode for scripts]' \
        '-log-level[Log level]:level:(debug info warn error)' \
        '-completion[Generate completion script]:shell:(bash zsh fish powershell)'
}

_bncalc "$@"
`
	_, err := fmt.Fprintf(out, script, strings.Join(operations, " "))
	return err
}

func generateFishCompletion(out io.Writer, operations []string) error {
	script := `# Fish completion script for bncalc
# Add this to ~/.config/fish/completions/bncalc.fish

complete -c bncalc -f

complete -c bncalc -s h -l help -d 'Show help message'
complete -c bncalc -s V -l version -d 'Show version information'

complete -c bncalc -o op -d 'Operation to evaluate' -xa '%s'
complete -c bncalc -o a -d 'First operand' -x
complete -c bncalc -o b -d 'Second operand' -x
complete -c bncalc -o bits -d 'Capacity in bits' -xa '64 128 256 512 1024 2048 4096'
complete -c bncalc -o word -d 'Word width in bits' -xa '8 16 32'
complete -c bncalc -o format -d 'Result format' -xa 'hex dec both'
complete -c bncalc -o input -d 'Default operand base' -xa 'hex dec'
complete -c bncalc -o timeout -d 'Maximum execution time' -xa '1s 10s 30s 1m 5m'
complete -c bncalc -o strict -d 'Fail when a result overflows'
complete -c bncalc -o verify -d 'Check results against the reference oracle'
complete -c bncalc -o max-exponent -d 'Largest exponent accepted by pow' -x
complete -c bncalc -o d -o details -d 'Show layout and timings'

complete -c bncalc -o json -d 'Output in JSON format'
complete -c bncalc -o o -o output -d 'Output file path' -rF
complete -c bncalc -o q -o quiet -d 'Quiet mode for scripts'
complete -c bncalc -o no-color -d 'Disable colored output'
complete -c bncalc -o log-level -d 'Log level' -xa 'debug info warn error'

complete -c bncalc -o server -d 'Start HTTP server mode'
complete -c bncalc -o port -d 'Server port' -xa '8080 3000 5000 9000'
complete -c bncalc -o interactive -d 'Start interactive REPL mode'
complete -c bncalc -o batch -d 'Evaluate a batch file' -rF
complete -c bncalc -o calibrate -d 'Benchmark word widths'
complete -c bncalc -o calibration-profile -d 'Calibration profile file' -rF
complete -c bncalc -o profile -d 'TOML configuration profile' -rF
complete -c bncalc -o completion -d 'Generate completion script' -xa 'bash zsh fish powershell'
`
	_, err := fmt.Fprintf(out, script, strings.Join(operations, " "))
	return err
}

func generatePowerShellCompletion(out io.Writer, operations []string) error {
	script := `# PowerShell completion script for bncalc
# Add this to your $PROFILE

$bncalcOperations = @(%s)

Register-ArgumentCompleter -CommandName 'bncalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
        @{Name = '-h'; Description = 'Show help message' }
        @{Name = '--version'; Description = 'Show version information' }
        @{Name = '-op'; Description = 'Operation to evaluate' }
        @{Name = '-a'; Description = 'First operand' }
        @{Name = '-b'; Description = 'Second operand' }
        @{Name = '-bits'; Description = 'Capacity in bits' }
        @{Name = '-word'; Description = 'Word width in bits' }
        @{Name = '-format'; Description = 'Result format' }
        @{Name = '-input'; Description = 'Default operand base' }
        @{Name = '-timeout'; Description = 'Maximum execution time' }
        @{Name = '-strict'; Description = 'Fail when a result overflows' }
        @{Name = '-verify'; Description = 'Check results against the reference oracle' }
        @{Name = '-max-exponent'; Description = 'Largest exponent accepted by pow' }
        @{Name = '-details'; Description = 'Show layout and timings' }
        @{Name = '-json'; Description = 'Output in JSON format' }
        @{Name = '-server'; Description = 'Start HTTP server mode' }
        @{Name = '-port'; Description = 'Server port' }
        @{Name = '-interactive'; Description = 'Start interactive REPL mode' }
        @{Name = '-batch'; Description = 'Evaluate a batch file' }
        @{Name = '-calibrate'; Description = 'Benchmark word widths' }
        @{Name = '-calibration-profile'; Description = 'Calibration profile file' }
        @{Name = '-profile'; Description = 'TOML configuration profile' }
        @{Name = '-no-color'; Description = 'Disable colored output' }
        @{Name = '-output'; Description = 'Output file path' }
        @{Name = '-quiet'; Description = 'Quiet mode for scripts' }
        @{Name = '-log-level'; Description = 'Log level' }
        @{Name = '-completion'; Description = 'Generate completion script' }
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    $values = switch ($prevElement) {
        '-op' { $bncalcOperations }
        '-word' { @('8', '16', '32') }
        '-format' { @('hex', 'dec', 'both') }
        '-input' { @('hex', 'dec') }
        '-completion' { @('bash', 'zsh', 'fish', 'powershell') }
        default { $null }
    }
    if ($values) {
        $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`
	quoted := make([]string, len(operations))
	for i, op := range operations {
		quoted[i] = "'" + op + "'"
	}
	_, err := fmt.Fprintf(out, script, strings.Join(quoted, ", "))
	return err
}
