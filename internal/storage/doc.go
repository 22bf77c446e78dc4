// Package storage keeps evaluated fields on disk, one directory per run:
//
//	<base>/<run id>/metadata.json  scene, grid shape and summary numbers
//	<base>/<run id>/field.csv      x,y,u,v,psi per grid sample
package storage
