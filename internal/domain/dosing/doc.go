// Package dosing calcula, sin I/O, lo que hace falta para el checklist diario:
// clasificación de vencimiento, expansión de frecuencias en horarios, progreso
// del día y recordatorios pendientes para un minuto dado.
//
// Todas las funciones son puras salvo Celebrator, que guarda si el progreso ya
// estaba completo para poder disparar la celebración por flanco.
package dosing
