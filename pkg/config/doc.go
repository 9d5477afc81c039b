// Package config loads and saves the vnv settings file.
//
// # Overview
//
// The settings file (.vnv.config.json by default) names the source file, the
// optional template file and the build output:
//
//	{
//	  "src": ".vnv",
//	  "cloak": false,
//	  "template": ".vnv.template",
//	  "build": {
//	    "output": ".env",
//	    "minify": false
//	  }
//	}
//
// A missing file is not an error: Load returns Default(). Fields missing from
// the file keep their defaults. The file is decoded with YAML, so a YAML
// settings file with the same keys also works.
//
// # Validation
//
// src and build.output are required. Explicitly empty values are rejected by
// Load and Save.
//
// # Usage Example
//
//	loader := config.NewLoader(afero.NewOsFs())
//	settings, err := loader.Load(config.DefaultPath)
//	if err != nil {
//	    return err
//	}
//	settings.Template = config.DefaultTemplate
//	err = loader.Save(config.DefaultPath, settings)
package config
